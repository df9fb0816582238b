package chat

import "fmt"

// Role identifies the speaker of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

func (r Role) String() string {
	return string(r)
}

// ParseRole looks up a Role by its string value.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSystem, RoleUser, RoleAssistant, RoleTool:
		return Role(s), nil
	default:
		return "", &DecodeError{Key: "role", Reason: fmt.Sprintf("unknown role %q", s)}
	}
}

// BlockType identifies the kind of a block within a structured assistant message.
type BlockType string

const (
	BlockTypeThoughts    BlockType = "thoughts"
	BlockTypeToolCalls   BlockType = "tool_calls"
	BlockTypeToolOutputs BlockType = "tool_outputs"
	BlockTypeResponse    BlockType = "response"
)

func (t BlockType) String() string {
	return string(t)
}

// ParseBlockType looks up a BlockType by its string value.
func ParseBlockType(s string) (BlockType, error) {
	switch BlockType(s) {
	case BlockTypeThoughts, BlockTypeToolCalls, BlockTypeToolOutputs, BlockTypeResponse:
		return BlockType(s), nil
	default:
		return "", &DecodeError{Key: "type", Reason: fmt.Sprintf("unknown block type %q", s)}
	}
}

// Section classifies where a block renders within an assistant segment:
// thoughts, tool calls and tool outputs belong to the inner (deliberation)
// section, the final response to the outer one.
func (t BlockType) Section() SectionType {
	if t == BlockTypeResponse {
		return SectionOuter
	}
	return SectionInner
}

// ContentFormat classifies how a message's content is represented. It is
// derived from the content's concrete type, never stored.
type ContentFormat int

const (
	FormatString ContentFormat = iota
	FormatMapping
)

func (f ContentFormat) String() string {
	switch f {
	case FormatString:
		return "string"
	case FormatMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// SectionType splits assistant output into the inner deliberation section and
// the outer user-facing section.
type SectionType int

const (
	SectionInner SectionType = iota
	SectionOuter
)

func (t SectionType) String() string {
	switch t {
	case SectionInner:
		return "inner"
	case SectionOuter:
		return "outer"
	default:
		return "unknown"
	}
}
