package llm

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaResource = "suggestions.schema.json"

// ValidateJSONAgainstSchema checks that doc conforms to the per-turn
// suggestion schema. The schema is compiled on every call; pending sets are
// small and change between turns, so caching compiled schemas buys nothing.
func ValidateJSONAgainstSchema(schemaMap map[string]any, doc []byte) error {
	raw, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaResource, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("register schema: %w", err)
	}
	compiled, err := c.Compile(schemaResource)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var decoded any
	if err := json.Unmarshal(doc, &decoded); err != nil {
		return fmt.Errorf("decode suggestions: %w", err)
	}
	if err := compiled.Validate(decoded); err != nil {
		return fmt.Errorf("suggestions do not match schema: %w", err)
	}
	return nil
}
