package chat

import "fmt"

// Message is a single conversation turn.
//
// Content's concrete shape must be compatible with Role: a structured system
// message carries *SystemContent, a structured user message *UserContent, a
// structured assistant message *AssistantContent, and any role may carry
// StringContent. The named constructors maintain that pairing; code
// assembling Message values directly is responsible for it.
//
// ToolCalls is the legacy side channel for the "tool call outside of blocks"
// pattern, usable only when Content is a plain string.
type Message struct {
	Role      Role       `json:"role"`
	Content   Content    `json:"content"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// NewSystemMessage returns a system message with plain string content.
func NewSystemMessage(text string) *Message {
	return &Message{Role: RoleSystem, Content: StringContent(text)}
}

// NewSystemMappingMessage returns a system message with mapping content.
func NewSystemMappingMessage(text string) *Message {
	return &Message{Role: RoleSystem, Content: &SystemContent{Text: text}}
}

// NewUserMessage returns a user message with plain string content.
func NewUserMessage(text string) *Message {
	return &Message{Role: RoleUser, Content: StringContent(text)}
}

// NewUserPartsMessage returns a user message with structured parts.
func NewUserPartsMessage(parts ...TextPart) *Message {
	return &Message{Role: RoleUser, Content: &UserContent{Parts: parts}}
}

// NewAssistantMessage returns an assistant message with plain string content
// and, optionally, legacy tool calls.
func NewAssistantMessage(text string, toolCalls ...ToolCall) *Message {
	return &Message{Role: RoleAssistant, Content: StringContent(text), ToolCalls: toolCalls}
}

// NewAssistantBlocksMessage returns an assistant message with structured blocks.
func NewAssistantBlocksMessage(blocks ...AssistantBlock) *Message {
	return &Message{Role: RoleAssistant, Content: &AssistantContent{Blocks: blocks}}
}

// NewToolMessage returns a tool message. Tool messages always carry plain
// string content.
func NewToolMessage(content string) *Message {
	return &Message{Role: RoleTool, Content: StringContent(content)}
}

// ToMap projects the message to plain data. RawContent and nil content pass
// through unchanged.
func (m *Message) ToMap() map[string]any {
	out := map[string]any{"role": string(m.Role)}

	switch c := m.Content.(type) {
	case StringContent:
		out["content"] = string(c)
	case *SystemContent:
		out["content"] = c.ToMap()
	case *UserContent:
		out["content"] = c.ToMap()
	case *AssistantContent:
		out["content"] = c.ToMap()
	case RawContent:
		out["content"] = c.Value
	default:
		out["content"] = m.Content
	}

	if len(m.ToolCalls) > 0 {
		toolCalls := make([]any, 0, len(m.ToolCalls))
		for _, call := range m.ToolCalls {
			toolCalls = append(toolCalls, map[string]any{
				"type":     "function",
				"function": call.ToMap(),
			})
		}
		out["tool_calls"] = toolCalls
	}

	return out
}

// MessageFromMap decodes a message. The structured content variant is picked
// from the role together with the presence of a text/parts/blocks key; any
// other mapping shape is kept as RawContent so unrecognized payloads survive
// a round trip. Legacy tool_calls entries whose type is not "function" are
// silently skipped.
func MessageFromMap(data map[string]any) (*Message, error) {
	roleStr, err := stringKey(data, "role")
	if err != nil {
		return nil, err
	}
	role, err := ParseRole(roleStr)
	if err != nil {
		return nil, err
	}

	rawContent, ok := data["content"]
	if !ok {
		return nil, missingKey("content")
	}

	var content Content
	switch v := rawContent.(type) {
	case string:
		content = StringContent(v)
	case map[string]any:
		switch {
		case role == RoleSystem && hasKey(v, "text"):
			content, err = SystemContentFromMap(v)
		case role == RoleUser && hasKey(v, "parts"):
			content, err = UserContentFromMap(v)
		case role == RoleAssistant && hasKey(v, "blocks"):
			content, err = AssistantContentFromMap(v)
		default:
			content = RawContent{Value: v}
		}
		if err != nil {
			return nil, err
		}
	default:
		content = RawContent{Value: v}
	}

	msg := &Message{Role: role, Content: content}

	if rawToolCalls, ok := data["tool_calls"]; ok {
		entries, ok := rawToolCalls.([]any)
		if !ok {
			return nil, &DecodeError{Key: "tool_calls", Reason: fmt.Sprintf("expected list, got %T", rawToolCalls)}
		}
		for _, entry := range entries {
			m, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			if kind, _ := m["type"].(string); kind != "function" {
				continue
			}
			fn, ok := m["function"].(map[string]any)
			if !ok {
				return nil, missingKey("function")
			}
			call, err := ToolCallFromMap(fn)
			if err != nil {
				return nil, err
			}
			msg.ToolCalls = append(msg.ToolCalls, call)
		}
	}

	return msg, nil
}

func hasKey(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}
