package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ValidateJSONAgainstSchema checks raw model JSON against a schema expressed
// as a generic map, before anything is unmarshaled into typed structs. The
// schema maps are small and built per call, so compilation is not cached.
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("reply.schema.json", bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("register schema: %w", err)
	}
	schema, err := compiler.Compile("reply.schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return &ParseError{Reason: fmt.Sprintf("decode for validation: %v", err)}
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("reply does not match schema: %w", err)
	}
	return nil
}
