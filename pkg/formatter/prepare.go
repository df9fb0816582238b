package formatter

import (
	"github.com/pkg/errors"

	"github.com/go-go-golems/apertus/pkg/chat"
)

// PrepareMessages projects typed messages into the plain records handed to
// the chat template. Every record carries the role's string value and a
// content value; absent optional fields are omitted rather than emitted as
// null or empty containers. Unrecognized content passes through unchanged.
func PrepareMessages(messages chat.Conversation) ([]map[string]any, error) {
	records := make([]map[string]any, 0, len(messages))

	for i, msg := range messages {
		record := map[string]any{"role": string(msg.Role)}

		switch c := msg.Content.(type) {
		case chat.StringContent:
			record["content"] = string(c)
		case *chat.SystemContent:
			record["content"] = map[string]any{"text": c.Text}
		case *chat.UserContent:
			parts := make([]map[string]any, 0, len(c.Parts))
			for _, part := range c.Parts {
				parts = append(parts, map[string]any{"type": part.Type, "text": part.Text})
			}
			record["content"] = map[string]any{"parts": parts}
		case *chat.AssistantContent:
			blocks, err := prepareBlocks(c)
			if err != nil {
				return nil, errors.Wrapf(err, "message %d", i)
			}
			record["content"] = map[string]any{"blocks": blocks}
		case chat.RawContent:
			record["content"] = c.Value
		default:
			record["content"] = msg.Content
		}

		if len(msg.ToolCalls) > 0 {
			toolCalls := make([]map[string]any, 0, len(msg.ToolCalls))
			for _, call := range msg.ToolCalls {
				toolCalls = append(toolCalls, map[string]any{
					"type":     "function",
					"function": map[string]any{"name": call.Name, "arguments": call.Arguments},
				})
			}
			record["tool_calls"] = toolCalls
		}

		records = append(records, record)
	}

	return records, nil
}

func prepareBlocks(content *chat.AssistantContent) ([]map[string]any, error) {
	blocks := make([]map[string]any, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		if err := block.Validate(); err != nil {
			return nil, err
		}
		record := map[string]any{"type": string(block.Type)}
		if block.Text != "" {
			record["text"] = block.Text
		}
		if len(block.Calls) > 0 {
			calls := make([]map[string]any, 0, len(block.Calls))
			for _, call := range block.Calls {
				calls = append(calls, map[string]any{"name": call.Name, "arguments": call.Arguments})
			}
			record["calls"] = calls
		}
		if len(block.Outputs) > 0 {
			outputs := make([]map[string]any, 0, len(block.Outputs))
			for _, output := range block.Outputs {
				outputs = append(outputs, map[string]any{"output": output.Output})
			}
			record["outputs"] = outputs
		}
		blocks = append(blocks, record)
	}
	return blocks, nil
}
