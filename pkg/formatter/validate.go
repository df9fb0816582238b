package formatter

import (
	"fmt"

	"github.com/go-go-golems/apertus/pkg/chat"
)

// ValidateFormatConsistency checks that every assistant message in the
// conversation uses the same content representation, string or structured.
// The first assistant message establishes the expected format; a first
// assistant message with any other content shape fails outright. Only
// assistant messages participate: system, user and tool messages are ignored.
//
// The check runs once per formatting call, so conversations may pass through
// inconsistent states while being assembled.
func ValidateFormatConsistency(messages chat.Conversation) error {
	expected := chat.FormatString
	seenAssistant := false

	for i, msg := range messages {
		if msg.Role != chat.RoleAssistant {
			continue
		}

		if !seenAssistant {
			switch msg.Content.(type) {
			case chat.StringContent:
				expected = chat.FormatString
			case *chat.AssistantContent:
				expected = chat.FormatMapping
			default:
				return &InconsistencyError{
					Index:  i,
					Reason: fmt.Sprintf("assistant message has invalid content type %T", msg.Content),
				}
			}
			seenAssistant = true
			continue
		}

		ok := false
		switch expected {
		case chat.FormatString:
			_, ok = msg.Content.(chat.StringContent)
		case chat.FormatMapping:
			_, ok = msg.Content.(*chat.AssistantContent)
		}
		if !ok {
			return &InconsistencyError{Index: i, Expected: expected}
		}
	}

	return nil
}
