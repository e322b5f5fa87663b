package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Compile compiles a JSON schema string into a reusable schema. Long
// running consumers compile their schema once instead of per message.
func Compile(schemaJSON string) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	sch, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile JSON schema: %w", err)
	}
	return sch, nil
}

// ValidateBytes validates raw JSON data against a compiled schema.
func ValidateBytes(sch *jsonschema.Schema, data []byte) error {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to unmarshal JSON data: %w", err)
	}
	if err := sch.Validate(decoded); err != nil {
		return fmt.Errorf("JSON data failed validation against schema: %v", err)
	}
	return nil
}

// ValidateJSONWithSchema validates a JSON data string against a JSON
// schema string. An empty schema accepts anything.
func ValidateJSONWithSchema(schemaJSON string, dataJSON string) error {
	if schemaJSON == "" {
		return nil
	}
	sch, err := Compile(schemaJSON)
	if err != nil {
		return err
	}
	return ValidateBytes(sch, []byte(dataJSON))
}
