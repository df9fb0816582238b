package formatter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/apertus/pkg/chat"
)

func TestPrepareStringContent(t *testing.T) {
	records, err := PrepareMessages(chat.NewConversation(chat.NewUserMessage("hi")))
	require.NoError(t, err)
	require.Equal(t, []map[string]any{{"role": "user", "content": "hi"}}, records)
}

func TestPrepareThoughtsBlockOmitsAbsentKeys(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewAssistantBlocksMessage(chat.NewThoughtsBlock("x")),
	)

	records, err := PrepareMessages(conv)
	require.NoError(t, err)
	require.Len(t, records, 1)

	content, ok := records[0]["content"].(map[string]any)
	require.True(t, ok)
	blocks, ok := content["blocks"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, blocks, 1)

	require.Equal(t, map[string]any{"type": "thoughts", "text": "x"}, blocks[0])
	require.NotContains(t, blocks[0], "calls")
	require.NotContains(t, blocks[0], "outputs")
}

func TestPrepareUserPartsPreserveOrder(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewUserPartsMessage(
			chat.NewTextPart("What is "),
			chat.NewTextPart("2 + 2"),
			chat.NewTextPart("?"),
		),
	)

	records, err := PrepareMessages(conv)
	require.NoError(t, err)

	content := records[0]["content"].(map[string]any)
	parts := content["parts"].([]map[string]any)
	require.Len(t, parts, 3)
	require.Equal(t, "What is ", parts[0]["text"])
	require.Equal(t, "2 + 2", parts[1]["text"])
	require.Equal(t, "?", parts[2]["text"])
}

func TestPrepareLegacyToolCalls(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewAssistantMessage("checking", chat.ToolCall{Name: "get_weather", Arguments: `{"city": "Paris"}`}),
	)

	records, err := PrepareMessages(conv)
	require.NoError(t, err)

	toolCalls, ok := records[0]["tool_calls"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, toolCalls, 1)
	require.Equal(t, "function", toolCalls[0]["type"])
	require.Equal(t,
		map[string]any{"name": "get_weather", "arguments": `{"city": "Paris"}`},
		toolCalls[0]["function"])
}

func TestPrepareOmitsEmptyToolCalls(t *testing.T) {
	records, err := PrepareMessages(chat.NewConversation(chat.NewAssistantMessage("A")))
	require.NoError(t, err)
	require.NotContains(t, records[0], "tool_calls")
}

func TestPrepareRawContentPassesThrough(t *testing.T) {
	payload := map[string]any{"fragments": []any{"a"}}
	conv := chat.Conversation{
		{Role: chat.RoleUser, Content: chat.RawContent{Value: payload}},
	}

	records, err := PrepareMessages(conv)
	require.NoError(t, err)
	require.Equal(t, payload, records[0]["content"])
}

func TestPrepareRejectsInvalidBlock(t *testing.T) {
	conv := chat.Conversation{
		{
			Role:    chat.RoleAssistant,
			Content: &chat.AssistantContent{Blocks: []chat.AssistantBlock{{Type: chat.BlockTypeToolCalls}}},
		},
	}

	_, err := PrepareMessages(conv)
	require.Error(t, err)
	require.Contains(t, err.Error(), "message 0")
}
