package chat

import (
	"fmt"
	"strings"
)

// Content is the closed set of payload shapes a message can carry: plain
// string content, one of the structured per-role contents, or RawContent for
// payloads this layer does not recognize.
type Content interface {
	Format() ContentFormat
	String() string
}

// StringContent is plain string message content.
type StringContent string

func (c StringContent) Format() ContentFormat { return FormatString }
func (c StringContent) String() string        { return string(c) }

var _ Content = StringContent("")

// RawContent carries a content payload this layer does not recognize. It is
// passed through projection and serialization unchanged so that a producer
// sending a newer content shape does not break older consumers.
type RawContent struct {
	Value any
}

func (c RawContent) Format() ContentFormat { return FormatMapping }

func (c RawContent) String() string {
	return fmt.Sprintf("%v", c.Value)
}

var _ Content = RawContent{}

// TextPart is a single text fragment within structured user content.
type TextPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// NewTextPart returns a TextPart with the standard "text" discriminant.
func NewTextPart(text string) TextPart {
	return TextPart{Type: "text", Text: text}
}

func (p TextPart) ToMap() map[string]any {
	return map[string]any{"type": p.Type, "text": p.Text}
}

func TextPartFromMap(data map[string]any) (TextPart, error) {
	text, err := stringKey(data, "text")
	if err != nil {
		return TextPart{}, err
	}
	typ := "text"
	if v, ok := data["type"].(string); ok {
		typ = v
	}
	return TextPart{Type: typ, Text: text}, nil
}

// SystemContent is the mapping form of a system message.
type SystemContent struct {
	Text string `json:"text"`
}

func (c *SystemContent) Format() ContentFormat { return FormatMapping }
func (c *SystemContent) String() string        { return c.Text }

func (c *SystemContent) ToMap() map[string]any {
	return map[string]any{"text": c.Text}
}

func SystemContentFromMap(data map[string]any) (*SystemContent, error) {
	text, err := stringKey(data, "text")
	if err != nil {
		return nil, err
	}
	return &SystemContent{Text: text}, nil
}

var _ Content = (*SystemContent)(nil)

// UserContent is the mapping form of a user message. Part order is rendering
// order: parts are concatenated when flattened to text.
type UserContent struct {
	Parts []TextPart `json:"parts"`
}

func (c *UserContent) Format() ContentFormat { return FormatMapping }

func (c *UserContent) String() string {
	var sb strings.Builder
	for _, part := range c.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String()
}

func (c *UserContent) ToMap() map[string]any {
	parts := make([]any, 0, len(c.Parts))
	for _, part := range c.Parts {
		parts = append(parts, part.ToMap())
	}
	return map[string]any{"parts": parts}
}

func UserContentFromMap(data map[string]any) (*UserContent, error) {
	entries, err := listKey(data, "parts")
	if err != nil {
		return nil, err
	}
	parts := make([]TextPart, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, &DecodeError{Key: "parts", Reason: fmt.Sprintf("expected mapping entry, got %T", entry)}
		}
		part, err := TextPartFromMap(m)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}
	return &UserContent{Parts: parts}, nil
}

var _ Content = (*UserContent)(nil)

// ToolCall names a function invocation requested by the assistant. Arguments
// is an opaque, normally JSON-encoded string; this layer never parses it.
type ToolCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func (c ToolCall) ToMap() map[string]any {
	return map[string]any{"name": c.Name, "arguments": c.Arguments}
}

func ToolCallFromMap(data map[string]any) (ToolCall, error) {
	name, err := stringKey(data, "name")
	if err != nil {
		return ToolCall{}, err
	}
	arguments, err := stringKey(data, "arguments")
	if err != nil {
		return ToolCall{}, err
	}
	return ToolCall{Name: name, Arguments: arguments}, nil
}

// ToolOutput captures the result of a tool execution as an opaque, normally
// JSON-encoded string.
type ToolOutput struct {
	Output string `json:"output"`
}

func (o ToolOutput) ToMap() map[string]any {
	return map[string]any{"output": o.Output}
}

func ToolOutputFromMap(data map[string]any) (ToolOutput, error) {
	output, err := stringKey(data, "output")
	if err != nil {
		return ToolOutput{}, err
	}
	return ToolOutput{Output: output}, nil
}
