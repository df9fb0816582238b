package formatter

import (
	"strings"

	"github.com/go-go-golems/apertus/pkg/chat"
)

// ParseConversation extracts messages from previously rendered chat-template
// text. The parse is explicitly lossy and best-effort: structured assistant
// content comes back as a single plain-string assistant message containing
// the raw flattened text, and messages are grouped system, then all users,
// then all assistants rather than in original turn order.
//
// Delimiters are located by literal substring search. At most one system
// span is extracted (first occurrence, dropped when empty after trimming);
// every user span is extracted in left-to-right order, empty spans included;
// every assistant span runs from its start token to the next end token or
// end-of-text.
func ParseConversation(text string) chat.Conversation {
	text = strings.TrimPrefix(text, BosToken)

	var messages chat.Conversation

	if span, ok := firstBetween(text, SystemStart, SystemEnd); ok {
		if trimmed := strings.TrimSpace(span); trimmed != "" {
			messages = append(messages, chat.NewSystemMessage(trimmed))
		}
	}

	for _, span := range allBetween(text, UserStart, UserEnd) {
		messages = append(messages, chat.NewUserMessage(strings.TrimSpace(span)))
	}

	for _, span := range allHalfOpen(text, AssistantStart, AssistantEnd) {
		messages = append(messages, chat.NewAssistantMessage(strings.TrimSpace(span)))
	}

	return messages
}

// ParseConversation is also available on the formatter for symmetry with the
// rendering entry points.
func (f *Formatter) ParseConversation(text string) chat.Conversation {
	return ParseConversation(text)
}

func firstBetween(s, start, end string) (string, bool) {
	i := strings.Index(s, start)
	if i == -1 {
		return "", false
	}
	i += len(start)
	j := strings.Index(s[i:], end)
	if j == -1 {
		return "", false
	}
	return s[i : i+j], true
}

// allBetween collects every non-overlapping span bounded by the start/end
// pair, left to right. A span without a closing token is not emitted.
func allBetween(s, start, end string) []string {
	var spans []string
	for {
		i := strings.Index(s, start)
		if i == -1 {
			return spans
		}
		s = s[i+len(start):]
		j := strings.Index(s, end)
		if j == -1 {
			return spans
		}
		spans = append(spans, s[:j])
		s = s[j+len(end):]
	}
}

// allHalfOpen collects every span from a start token to the next end token or
// end-of-text, whichever comes first.
func allHalfOpen(s, start, end string) []string {
	var spans []string
	for {
		i := strings.Index(s, start)
		if i == -1 {
			return spans
		}
		s = s[i+len(start):]
		j := strings.Index(s, end)
		if j == -1 {
			spans = append(spans, s)
			return spans
		}
		spans = append(spans, s[:j])
		s = s[j+len(end):]
	}
}
