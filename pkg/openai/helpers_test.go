package openai

import (
	"testing"

	go_openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/apertus/pkg/chat"
	"github.com/go-go-golems/apertus/pkg/formatter"
)

func newFormatter(t *testing.T, options ...formatter.Option) *formatter.Formatter {
	t.Helper()
	f, err := formatter.New(options...)
	require.NoError(t, err)
	return f
}

func TestMakeChatCompletionMessagesStringConversation(t *testing.T) {
	f := newFormatter(t)
	conv := chat.NewConversation(
		chat.NewSystemMessage("S"),
		chat.NewUserMessage("U"),
		chat.NewAssistantMessage("A"),
	)

	messages, err := MakeChatCompletionMessages(f, conv)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	require.Equal(t, go_openai.ChatMessageRoleSystem, messages[0].Role)
	require.Equal(t, "S", messages[0].Content)
	require.Equal(t, go_openai.ChatMessageRoleUser, messages[1].Role)
	require.Equal(t, "U", messages[1].Content)
	require.Equal(t, go_openai.ChatMessageRoleAssistant, messages[2].Role)
	require.Equal(t, "A", messages[2].Content)
}

func TestMakeChatCompletionMessagesFlattensStructuredContent(t *testing.T) {
	f := newFormatter(t)
	conv := chat.NewConversation(
		chat.NewSystemMappingMessage("system text"),
		chat.NewUserPartsMessage(chat.NewTextPart("part one "), chat.NewTextPart("part two")),
		chat.NewAssistantBlocksMessage(chat.NewResponseBlock("R")),
	)

	messages, err := MakeChatCompletionMessages(f, conv)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	require.Equal(t, "system text", messages[0].Content)
	require.Equal(t, "part one part two", messages[1].Content)
	require.Equal(t, "R", messages[2].Content)
}

func TestMakeChatCompletionMessagesLegacyToolCalls(t *testing.T) {
	f := newFormatter(t)
	conv := chat.NewConversation(
		chat.NewUserMessage("weather in Paris?"),
		chat.NewAssistantMessage("", chat.ToolCall{Name: "get_weather", Arguments: `{"city": "Paris"}`}),
	)

	messages, err := MakeChatCompletionMessages(f, conv)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	calls := messages[1].ToolCalls
	require.Len(t, calls, 1)
	require.NotEmpty(t, calls[0].ID)
	require.Equal(t, go_openai.ToolTypeFunction, calls[0].Type)
	require.Equal(t, "get_weather", calls[0].Function.Name)
	require.Equal(t, `{"city": "Paris"}`, calls[0].Function.Arguments)
}

func TestMakeChatCompletionMessagesGeneratesDistinctIDs(t *testing.T) {
	f := newFormatter(t)
	conv := chat.NewConversation(
		chat.NewAssistantMessage("",
			chat.ToolCall{Name: "a", Arguments: "{}"},
			chat.ToolCall{Name: "b", Arguments: "{}"},
		),
	)

	messages, err := MakeChatCompletionMessages(f, conv)
	require.NoError(t, err)
	require.Len(t, messages[0].ToolCalls, 2)
	require.NotEqual(t, messages[0].ToolCalls[0].ID, messages[0].ToolCalls[1].ID)
}

func TestMakeChatCompletionMessagesRejectsMixedFormats(t *testing.T) {
	f := newFormatter(t)
	conv := chat.NewConversation(
		chat.NewAssistantMessage("plain"),
		chat.NewAssistantBlocksMessage(chat.NewResponseBlock("structured")),
	)

	_, err := MakeChatCompletionMessages(f, conv)
	require.Error(t, err)

	var inconsistency *formatter.InconsistencyError
	require.ErrorAs(t, err, &inconsistency)
	require.Equal(t, 1, inconsistency.Index)
}

func TestMakeChatCompletionMessagesRejectsRawContent(t *testing.T) {
	f := newFormatter(t)
	conv := chat.NewConversation(
		&chat.Message{Role: chat.RoleUser, Content: chat.RawContent{Value: 42}},
	)

	_, err := MakeChatCompletionMessages(f, conv)
	require.Error(t, err)
	require.Contains(t, err.Error(), "message 0")
}
