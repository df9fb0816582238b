package serde

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/go-go-golems/apertus/pkg/chat"
)

// Options controls serialization behavior.
type Options struct {
	// OmitToolCalls drops the legacy tool_calls side channel on write
	OmitToolCalls bool
}

// ToYAML marshals a conversation to YAML via its plain-map projection, so the
// on-disk shape matches the JSON document ({"messages": [...]}).
func ToYAML(c chat.Conversation, opt Options) ([]byte, error) {
	if len(c) == 0 {
		return []byte("messages: []\n"), nil
	}
	snapshot := c
	if opt.OmitToolCalls {
		snapshot = make(chat.Conversation, 0, len(c))
		for _, msg := range c {
			m := *msg
			m.ToolCalls = nil
			snapshot = append(snapshot, &m)
		}
	}
	out, err := yaml.Marshal(snapshot.ToMap())
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal conversation")
	}
	return out, nil
}

// FromYAML unmarshals a conversation from YAML.
func FromYAML(b []byte) (chat.Conversation, error) {
	var data map[string]any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal conversation")
	}
	return chat.ConversationFromMap(data)
}

// SaveConversationYAML writes a conversation to a YAML file.
func SaveConversationYAML(path string, c chat.Conversation, opt Options) error {
	data, err := ToYAML(c, opt)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadConversationYAML reads a conversation from a YAML file.
func LoadConversationYAML(path string) (chat.Conversation, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return FromYAML(b)
}
