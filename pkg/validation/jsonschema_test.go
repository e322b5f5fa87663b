package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateJSONWithSchema_Valid(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": { "name": {"type": "string"}, "age": {"type": "integer"} },
		"required": ["name"]
	}`
	assert.NoError(t, ValidateJSONWithSchema(schema, `{"name": "John Doe", "age": 30}`))
	assert.NoError(t, ValidateJSONWithSchema(schema, `{"name": "Jane Doe"}`))
}

func TestValidateJSONWithSchema_Invalid(t *testing.T) {
	schema := `{
		"type": "object",
		"properties": { "name": {"type": "string"}, "age": {"type": "integer", "minimum": 0} },
		"required": ["name", "age"]
	}`
	err := ValidateJSONWithSchema(schema, `{"name": "Test"}`)
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "missing properties: 'age'")
	}

	err = ValidateJSONWithSchema(schema, `{"name": "Test", "age": "thirty"}`)
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "expected integer, but got string")
	}

	err = ValidateJSONWithSchema(schema, `{"name": "Test", "age": -5}`)
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "must be >= 0 but found -5")
	}
}

func TestValidateJSONWithSchema_EmptySchema(t *testing.T) {
	assert.NoError(t, ValidateJSONWithSchema("", `{"name": "Test"}`))
}

func TestValidateJSONWithSchema_InvalidSchema(t *testing.T) {
	err := ValidateJSONWithSchema(`{"type": "object", "properties": {"name": {"type": "str"}}}`, `{"name": "Test"}`)
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "failed to compile JSON schema")
	}
}

func TestValidateJSONWithSchema_EmptyData(t *testing.T) {
	schema := `{"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]}`
	err := ValidateJSONWithSchema(schema, `{}`)
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "missing properties: 'name'")
	}

	err = ValidateJSONWithSchema(schema, "")
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "failed to unmarshal JSON data")
	}
}

func TestCompileAndValidateBytes(t *testing.T) {
	sch, err := Compile(`{
		"type": "object",
		"required": ["org", "name"],
		"properties": {
			"org": {"type": "string", "minLength": 1},
			"name": {"type": "string", "minLength": 1}
		}
	}`)
	assert.NoError(t, err)

	assert.NoError(t, ValidateBytes(sch, []byte(`{"org": "org-1", "name": "Ada"}`)))

	err = ValidateBytes(sch, []byte(`{"org": "org-1"}`))
	assert.Error(t, err)

	err = ValidateBytes(sch, []byte(`not json`))
	assert.Error(t, err)
	if err != nil {
		assert.Contains(t, err.Error(), "failed to unmarshal JSON data")
	}
}
