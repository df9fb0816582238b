package chat

import "fmt"

// BlockShapeError reports an AssistantBlock whose payload does not match its
// declared type, e.g. a thoughts block carrying tool calls.
type BlockShapeError struct {
	Type   BlockType
	Reason string
}

func (e *BlockShapeError) Error() string {
	return fmt.Sprintf("%s block %s", e.Type, e.Reason)
}

// DecodeError reports a malformed payload handed to one of the FromMap
// functions: a required key is missing, a value has the wrong type, or an
// enum string is not recognized.
type DecodeError struct {
	Key    string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Key == "" {
		return e.Reason
	}
	return fmt.Sprintf("key %q: %s", e.Key, e.Reason)
}

func missingKey(key string) error {
	return &DecodeError{Key: key, Reason: "required key missing"}
}
