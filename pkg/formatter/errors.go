package formatter

import (
	"fmt"

	"github.com/go-go-golems/apertus/pkg/chat"
)

// InconsistencyError reports a conversation whose assistant messages do not
// share one content format. Index is the 0-based position of the offending
// message; Expected is the format established by the first assistant message.
type InconsistencyError struct {
	Index    int
	Expected chat.ContentFormat
	Reason   string
}

func (e *InconsistencyError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("message %d: %s", e.Index, e.Reason)
	}
	got := "structured"
	other := "string"
	if e.Expected == chat.FormatMapping {
		got, other = other, got
	}
	return fmt.Sprintf(
		"format inconsistency: assistant message %d uses %s content but other assistant messages use %s content; all assistant messages in a conversation must use the same content format",
		e.Index, got, other)
}

// TemplateError is produced when the chat template invokes the raise helper.
// Engine-level failures are propagated as-is, not translated into this type.
type TemplateError struct {
	Message string
}

func (e *TemplateError) Error() string {
	return e.Message
}
