package formatter

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/go-go-golems/apertus/pkg/chat"
)

func TestConsistencyTrivialWithoutAssistant(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewSystemMessage("S"),
		chat.NewUserMessage("U"),
	)
	require.NoError(t, ValidateFormatConsistency(conv))
}

func TestConsistencyAllString(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewUserMessage("U"),
		chat.NewAssistantMessage("A1"),
		chat.NewUserMessage("U2"),
		chat.NewAssistantMessage("A2"),
	)
	require.NoError(t, ValidateFormatConsistency(conv))
}

func TestConsistencyAllStructured(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewAssistantBlocksMessage(chat.NewResponseBlock("A1")),
		chat.NewAssistantBlocksMessage(chat.NewResponseBlock("A2")),
	)
	require.NoError(t, ValidateFormatConsistency(conv))
}

func TestConsistencyMixedFailsAtOffendingIndex(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewSystemMessage("S"),
		chat.NewUserMessage("U"),
		chat.NewAssistantMessage("A"),
		chat.NewAssistantBlocksMessage(chat.NewResponseBlock("B")),
	)

	err := ValidateFormatConsistency(conv)
	require.Error(t, err)

	var inconsistencyErr *InconsistencyError
	require.True(t, errors.As(err, &inconsistencyErr))
	require.Equal(t, 3, inconsistencyErr.Index)
	require.Equal(t, chat.FormatString, inconsistencyErr.Expected)
}

func TestConsistencyStructuredThenStringFails(t *testing.T) {
	conv := chat.NewConversation(
		chat.NewAssistantBlocksMessage(chat.NewResponseBlock("A")),
		chat.NewAssistantMessage("B"),
	)

	err := ValidateFormatConsistency(conv)
	require.Error(t, err)

	var inconsistencyErr *InconsistencyError
	require.True(t, errors.As(err, &inconsistencyErr))
	require.Equal(t, 1, inconsistencyErr.Index)
	require.Equal(t, chat.FormatMapping, inconsistencyErr.Expected)
}

func TestConsistencyFirstAssistantInvalidContentType(t *testing.T) {
	conv := chat.Conversation{
		{Role: chat.RoleAssistant, Content: chat.RawContent{Value: map[string]any{"foo": "bar"}}},
	}

	err := ValidateFormatConsistency(conv)
	require.Error(t, err)

	var inconsistencyErr *InconsistencyError
	require.True(t, errors.As(err, &inconsistencyErr))
	require.Equal(t, 0, inconsistencyErr.Index)
	require.Contains(t, err.Error(), "invalid content type")
}

func TestConsistencyIgnoresOtherRoles(t *testing.T) {
	// structured system/user content does not participate in the rule
	conv := chat.NewConversation(
		chat.NewSystemMappingMessage("S"),
		chat.NewUserPartsMessage(chat.NewTextPart("U")),
		chat.NewAssistantMessage("A"),
	)
	require.NoError(t, ValidateFormatConsistency(conv))
}
