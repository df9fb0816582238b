package openai

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	go_openai "github.com/sashabaranov/go-openai"

	"github.com/go-go-golems/apertus/pkg/chat"
	"github.com/go-go-golems/apertus/pkg/formatter"
)

// MakeChatCompletionMessages converts a conversation into go-openai chat
// completion messages. The completion API only accepts string content, so
// structured assistant messages are flattened through assistant-only
// rendering; structured system and user contents flatten to their text.
// Legacy tool calls become function tool-call entries with generated IDs.
func MakeChatCompletionMessages(f *formatter.Formatter, conv chat.Conversation) ([]go_openai.ChatCompletionMessage, error) {
	if err := formatter.ValidateFormatConsistency(conv); err != nil {
		return nil, err
	}

	messages := make([]go_openai.ChatCompletionMessage, 0, len(conv))
	for i, msg := range conv {
		out := go_openai.ChatCompletionMessage{Role: string(msg.Role)}

		switch c := msg.Content.(type) {
		case chat.StringContent:
			out.Content = string(c)
		case *chat.SystemContent:
			out.Content = c.Text
		case *chat.UserContent:
			out.Content = c.String()
		case *chat.AssistantContent:
			rendered, err := f.FormatAssistantContent(c)
			if err != nil {
				return nil, errors.Wrapf(err, "message %d", i)
			}
			out.Content = rendered
		default:
			return nil, errors.Errorf("message %d: cannot convert content type %T", i, msg.Content)
		}

		for _, call := range msg.ToolCalls {
			out.ToolCalls = append(out.ToolCalls, go_openai.ToolCall{
				ID:   uuid.NewString(),
				Type: go_openai.ToolTypeFunction,
				Function: go_openai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}

		messages = append(messages, out)
	}

	log.Debug().Int("messages", len(messages)).Msg("converted conversation to chat completion messages")
	return messages, nil
}
