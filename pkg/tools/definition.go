package tools

import (
	"encoding/json"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// ToolDefinition describes a tool the model may call: a name, a human
// description, and a JSON schema for its arguments. Parameters is kept as
// plain data so definitions round-trip through the formatter's tool records.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// NewTool returns a definition with an explicit parameters schema.
func NewTool(name, description string, parameters map[string]any) *ToolDefinition {
	return &ToolDefinition{Name: name, Description: description, Parameters: parameters}
}

// NewToolFromStruct reflects the parameters schema from a sample arguments
// struct, so tool authors do not have to write schemas by hand.
func NewToolFromStruct(name, description string, params any) (*ToolDefinition, error) {
	reflector := &jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := reflector.Reflect(params)
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal schema for tool %s", name)
	}
	var parameters map[string]any
	if err := json.Unmarshal(raw, &parameters); err != nil {
		return nil, errors.Wrapf(err, "failed to decode schema for tool %s", name)
	}
	delete(parameters, "$schema")
	return &ToolDefinition{Name: name, Description: description, Parameters: parameters}, nil
}

// ToMap projects the definition into the plain record the formatter's
// developer segment lists.
func (t *ToolDefinition) ToMap() map[string]any {
	return map[string]any{
		"name":        t.Name,
		"description": t.Description,
		"parameters":  t.Parameters,
	}
}

// ValidateArguments checks a tool call's opaque arguments string (normally
// JSON) against the tool's parameters schema.
func (t *ToolDefinition) ValidateArguments(arguments string) error {
	schemaLoader := gojsonschema.NewGoLoader(t.Parameters)
	documentLoader := gojsonschema.NewStringLoader(arguments)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.Wrapf(err, "failed to validate arguments for tool %s", t.Name)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resultError := range result.Errors() {
			details = append(details, resultError.String())
		}
		return errors.Errorf("invalid arguments for tool %s: %s", t.Name, strings.Join(details, "; "))
	}
	return nil
}

// Schemas projects definitions into the record list handed to
// formatter.WithTools.
func Schemas(definitions ...*ToolDefinition) []map[string]any {
	schemas := make([]map[string]any, 0, len(definitions))
	for _, definition := range definitions {
		schemas = append(schemas, definition.ToMap())
	}
	return schemas
}
