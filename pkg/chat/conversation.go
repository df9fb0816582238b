package chat

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Conversation is an ordered sequence of messages. Turn order is the slice
// order; no alternation or role pattern is enforced here. The cross-cutting
// assistant format-consistency rule is checked at the formatting boundary,
// not on assembly, so a conversation may be temporarily inconsistent while
// being built.
type Conversation []*Message

// NewConversation builds a conversation from messages in turn order.
func NewConversation(messages ...*Message) Conversation {
	return messages
}

func (c Conversation) ToMap() map[string]any {
	messages := make([]any, 0, len(c))
	for _, msg := range c {
		messages = append(messages, msg.ToMap())
	}
	return map[string]any{"messages": messages}
}

func ConversationFromMap(data map[string]any) (Conversation, error) {
	entries, err := listKey(data, "messages")
	if err != nil {
		return nil, err
	}
	messages := make(Conversation, 0, len(entries))
	for i, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, &DecodeError{Key: "messages", Reason: fmt.Sprintf("entry %d: expected mapping, got %T", i, entry)}
		}
		msg, err := MessageFromMap(m)
		if err != nil {
			return nil, errors.Wrapf(err, "message %d", i)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// ToJSON serializes the conversation as a {"messages": [...]} document.
// Key ordering is not preserved across a round trip, only content equality.
func (c Conversation) ToJSON() (string, error) {
	return c.toJSON("")
}

// ToJSONIndent serializes with the given indent string.
func (c Conversation) ToJSONIndent(indent string) (string, error) {
	return c.toJSON(indent)
}

func (c Conversation) toJSON(indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(c.ToMap()); err != nil {
		return "", errors.Wrap(err, "failed to encode conversation")
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

func ConversationFromJSON(document string) (Conversation, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(document), &data); err != nil {
		return nil, errors.Wrap(err, "failed to decode conversation")
	}
	return ConversationFromMap(data)
}
