package chat

import "fmt"

// AssistantBlock is one typed segment of a structured assistant message.
// Exactly one payload field is populated, determined by Type: thoughts and
// response blocks carry Text, tool_calls blocks carry Calls, tool_outputs
// blocks carry Outputs. Validate reports a BlockShapeError otherwise.
type AssistantBlock struct {
	Type    BlockType    `json:"type"`
	Text    string       `json:"text,omitempty"`
	Calls   []ToolCall   `json:"calls,omitempty"`
	Outputs []ToolOutput `json:"outputs,omitempty"`
}

// NewThoughtsBlock returns a reasoning block for the inner section.
func NewThoughtsBlock(text string) AssistantBlock {
	return AssistantBlock{Type: BlockTypeThoughts, Text: text}
}

// NewResponseBlock returns a final-response block for the outer section.
func NewResponseBlock(text string) AssistantBlock {
	return AssistantBlock{Type: BlockTypeResponse, Text: text}
}

// NewToolCallsBlock returns a block requesting one or more tool invocations.
func NewToolCallsBlock(calls ...ToolCall) AssistantBlock {
	return AssistantBlock{Type: BlockTypeToolCalls, Calls: calls}
}

// NewToolOutputsBlock returns a block carrying tool execution results.
func NewToolOutputsBlock(outputs ...ToolOutput) AssistantBlock {
	return AssistantBlock{Type: BlockTypeToolOutputs, Outputs: outputs}
}

// Validate checks the type/payload pairing. It is called by FromMap and by
// the formatter before rendering; code assembling blocks by struct literal
// can call it directly.
func (b AssistantBlock) Validate() error {
	switch b.Type {
	case BlockTypeThoughts, BlockTypeResponse:
		if b.Text == "" {
			return &BlockShapeError{Type: b.Type, Reason: "requires text"}
		}
		if len(b.Calls) > 0 || len(b.Outputs) > 0 {
			return &BlockShapeError{Type: b.Type, Reason: "cannot have calls or outputs"}
		}
	case BlockTypeToolCalls:
		if len(b.Calls) == 0 {
			return &BlockShapeError{Type: b.Type, Reason: "requires calls"}
		}
		if b.Text != "" || len(b.Outputs) > 0 {
			return &BlockShapeError{Type: b.Type, Reason: "cannot have text or outputs"}
		}
	case BlockTypeToolOutputs:
		if len(b.Outputs) == 0 {
			return &BlockShapeError{Type: b.Type, Reason: "requires outputs"}
		}
		if b.Text != "" || len(b.Calls) > 0 {
			return &BlockShapeError{Type: b.Type, Reason: "cannot have text or calls"}
		}
	default:
		return &BlockShapeError{Type: b.Type, Reason: "has unknown type"}
	}
	return nil
}

// ToMap projects the block to plain data. Absent payload fields are omitted,
// not emitted as null or empty containers.
func (b AssistantBlock) ToMap() map[string]any {
	out := map[string]any{"type": string(b.Type)}
	if b.Text != "" {
		out["text"] = b.Text
	}
	if len(b.Calls) > 0 {
		calls := make([]any, 0, len(b.Calls))
		for _, call := range b.Calls {
			calls = append(calls, call.ToMap())
		}
		out["calls"] = calls
	}
	if len(b.Outputs) > 0 {
		outputs := make([]any, 0, len(b.Outputs))
		for _, output := range b.Outputs {
			outputs = append(outputs, output.ToMap())
		}
		out["outputs"] = outputs
	}
	return out
}

func AssistantBlockFromMap(data map[string]any) (AssistantBlock, error) {
	typeStr, err := stringKey(data, "type")
	if err != nil {
		return AssistantBlock{}, err
	}
	blockType, err := ParseBlockType(typeStr)
	if err != nil {
		return AssistantBlock{}, err
	}

	block := AssistantBlock{Type: blockType}
	if v, ok := data["text"].(string); ok {
		block.Text = v
	}
	if _, ok := data["calls"]; ok {
		entries, err := listKey(data, "calls")
		if err != nil {
			return AssistantBlock{}, err
		}
		for _, entry := range entries {
			m, ok := entry.(map[string]any)
			if !ok {
				return AssistantBlock{}, &DecodeError{Key: "calls", Reason: fmt.Sprintf("expected mapping entry, got %T", entry)}
			}
			call, err := ToolCallFromMap(m)
			if err != nil {
				return AssistantBlock{}, err
			}
			block.Calls = append(block.Calls, call)
		}
	}
	if _, ok := data["outputs"]; ok {
		entries, err := listKey(data, "outputs")
		if err != nil {
			return AssistantBlock{}, err
		}
		for _, entry := range entries {
			m, ok := entry.(map[string]any)
			if !ok {
				return AssistantBlock{}, &DecodeError{Key: "outputs", Reason: fmt.Sprintf("expected mapping entry, got %T", entry)}
			}
			output, err := ToolOutputFromMap(m)
			if err != nil {
				return AssistantBlock{}, err
			}
			block.Outputs = append(block.Outputs, output)
		}
	}

	if err := block.Validate(); err != nil {
		return AssistantBlock{}, err
	}
	return block, nil
}

// AssistantContent is the mapping form of an assistant message: an ordered
// sequence of blocks. Block order is presentation order; the conventional
// thoughts / tool_calls / tool_outputs / response ordering is a caller
// convention, not enforced here.
type AssistantContent struct {
	Blocks []AssistantBlock `json:"blocks"`
}

func (c *AssistantContent) Format() ContentFormat { return FormatMapping }

func (c *AssistantContent) String() string {
	return fmt.Sprintf("AssistantContent{%d blocks}", len(c.Blocks))
}

var _ Content = (*AssistantContent)(nil)

// Validate checks every block's type/payload pairing.
func (c *AssistantContent) Validate() error {
	for _, block := range c.Blocks {
		if err := block.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c *AssistantContent) ToMap() map[string]any {
	blocks := make([]any, 0, len(c.Blocks))
	for _, block := range c.Blocks {
		blocks = append(blocks, block.ToMap())
	}
	return map[string]any{"blocks": blocks}
}

func AssistantContentFromMap(data map[string]any) (*AssistantContent, error) {
	entries, err := listKey(data, "blocks")
	if err != nil {
		return nil, err
	}
	blocks := make([]AssistantBlock, 0, len(entries))
	for _, entry := range entries {
		m, ok := entry.(map[string]any)
		if !ok {
			return nil, &DecodeError{Key: "blocks", Reason: fmt.Sprintf("expected mapping entry, got %T", entry)}
		}
		block, err := AssistantBlockFromMap(m)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return &AssistantContent{Blocks: blocks}, nil
}
