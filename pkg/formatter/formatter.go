package formatter

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/apertus/pkg/chat"
)

//go:embed templates/chat_template.tmpl
var chatTemplate string

// Formatter renders conversations to the Apertus chat-template text form and
// parses that form back into conversations. The template is parsed once at
// construction and held for the formatter's lifetime; all per-call state is
// built fresh, so a Formatter is safe for concurrent use.
type Formatter struct {
	enableThinking bool
	tools          []map[string]any
	tmpl           *template.Template
}

type Option func(*Formatter)

// WithThinking enables the deliberation (inner) section when rendering.
func WithThinking(enabled bool) Option {
	return func(f *Formatter) {
		f.enableThinking = enabled
	}
}

// WithTools sets the tool schemas listed in the developer segment. Each
// schema is a plain record with at least name, description and parameters.
func WithTools(tools ...map[string]any) Option {
	return func(f *Formatter) {
		f.tools = tools
	}
}

func New(options ...Option) (*Formatter, error) {
	f := &Formatter{}
	for _, option := range options {
		option(f)
	}

	tmpl, err := template.New("chat_template").
		Funcs(sprig.TxtFuncMap()).
		Funcs(templateFuncs()).
		Parse(chatTemplate)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse chat template")
	}
	f.tmpl = tmpl

	return f, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"raise": func(message string) (string, error) {
			return "", &TemplateError{Message: message}
		},
		"tojson": func(v any) (string, error) {
			return EncodeJSON(v, "")
		},
		"tojsonIndent": func(v any, indent string) (string, error) {
			return EncodeJSON(v, indent)
		},
		"strftimeNow": func(format string) string {
			return Strftime(time.Now(), format)
		},
	}
}

// EncodeJSON is the template's tojson helper: HTML escaping disabled, map
// keys sorted, compact separators, optional indent.
func EncodeJSON(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(v); err != nil {
		return "", errors.Wrap(err, "failed to encode value")
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// FormatConversation renders a whole conversation. It validates assistant
// format consistency first, then hands the projected records to the chat
// template. addGenerationPrompt appends a bare assistant start token.
func (f *Formatter) FormatConversation(conv chat.Conversation, addGenerationPrompt bool) (string, error) {
	if err := ValidateFormatConsistency(conv); err != nil {
		return "", err
	}
	messages, err := PrepareMessages(conv)
	if err != nil {
		return "", err
	}

	log.Debug().
		Int("messages", len(messages)).
		Int("tools", len(f.tools)).
		Bool("add_generation_prompt", addGenerationPrompt).
		Msg("rendering conversation")

	return f.render(BosToken, messages, addGenerationPrompt)
}

// FormatAssistantContent renders structured assistant content as a bare
// string, for embedding into chat formats that only accept string content.
// It renders a synthetic single-message conversation with an empty leading
// token and slices out the span between the assistant delimiters (or to
// end-of-text when the end delimiter is missing). If the start delimiter is
// absent from the render, the whole trimmed render is returned; that only
// happens if the template grammar changes.
func (f *Formatter) FormatAssistantContent(content *chat.AssistantContent) (string, error) {
	messages, err := PrepareMessages(chat.Conversation{chat.NewAssistantBlocksMessage(content.Blocks...)})
	if err != nil {
		return "", err
	}

	rendered, err := f.render("", messages, false)
	if err != nil {
		return "", err
	}

	start := strings.Index(rendered, AssistantStart)
	if start == -1 {
		log.Warn().Msg("assistant start token missing from render, returning whole text")
		return strings.TrimSpace(rendered), nil
	}
	start += len(AssistantStart)
	if end := strings.Index(rendered[start:], AssistantEnd); end != -1 {
		return strings.TrimSpace(rendered[start : start+end]), nil
	}
	return strings.TrimSpace(rendered[start:]), nil
}

// FormatAssistantMessageAsString flattens an assistant message to plain text:
// string content short-circuits without touching the template engine,
// structured content renders assistant-only, anything else stringifies.
func (f *Formatter) FormatAssistantMessageAsString(msg *chat.Message) (string, error) {
	switch c := msg.Content.(type) {
	case chat.StringContent:
		return string(c), nil
	case *chat.AssistantContent:
		return f.FormatAssistantContent(c)
	default:
		return msg.Content.String(), nil
	}
}

func (f *Formatter) render(bosToken string, messages []map[string]any, addGenerationPrompt bool) (string, error) {
	vars := map[string]any{
		"bos_token":             bosToken,
		"messages":              messages,
		"enable_thinking":       f.enableThinking,
		"tools":                 f.tools,
		"add_generation_prompt": addGenerationPrompt,
	}

	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, vars); err != nil {
		return "", err
	}
	return buf.String(), nil
}
