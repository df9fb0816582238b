package serde

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/apertus/pkg/chat"
)

func TestYAMLRoundTrip(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewSystemMappingMessage("You are a helpful assistant."),
		chat.NewUserPartsMessage(chat.NewTextPart("hello")),
		chat.NewAssistantBlocksMessage(
			chat.NewThoughtsBlock("greeting back"),
			chat.NewResponseBlock("Hello!"),
		),
	)

	out, err := ToYAML(conv, Options{})
	require.NoError(t, err)

	decoded, err := FromYAML(out)
	require.NoError(t, err)
	require.Equal(t, conv, decoded)
}

func TestYAMLOmitToolCalls(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewAssistantMessage("checking", chat.ToolCall{Name: "f", Arguments: "{}"}),
	)

	out, err := ToYAML(conv, Options{OmitToolCalls: true})
	require.NoError(t, err)
	require.NotContains(t, string(out), "tool_calls")

	decoded, err := FromYAML(out)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Empty(t, decoded[0].ToolCalls)

	// the source conversation keeps its tool calls
	require.Len(t, conv[0].ToolCalls, 1)
}

func TestYAMLEmptyConversation(t *testing.T) {
	out, err := ToYAML(nil, Options{})
	require.NoError(t, err)

	decoded, err := FromYAML(out)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestSaveLoadConversationYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conversation.yaml")
	conv := chat.NewConversation(
		chat.NewUserMessage("hi"),
		chat.NewAssistantMessage("hello"),
	)

	require.NoError(t, SaveConversationYAML(path, conv, Options{}))

	loaded, err := LoadConversationYAML(path)
	require.NoError(t, err)
	require.Equal(t, conv, loaded)
}
