package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleParams struct {
	Expression string   `json:"expression" description:"expression to evaluate"`
	Precision  *int     `json:"precision"`
	Verbose    bool     `json:"verbose,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	hidden     string   // unexported, must be skipped
}

func TestCreateSchema(t *testing.T) {
	schema := CreateSchema(sampleParams{})

	assert.Equal(t, "object", schema["type"])

	properties := schema["properties"].(map[string]any)
	require.Contains(t, properties, "expression")
	assert.NotContains(t, properties, "hidden")

	expr := properties["expression"].(map[string]any)
	assert.Equal(t, "string", expr["type"])
	assert.Equal(t, "expression to evaluate", expr["description"])

	assert.Equal(t, "integer", properties["precision"].(map[string]any)["type"])
	assert.Equal(t, "array", properties["tags"].(map[string]any)["type"])

	// pointer and omitempty fields are optional
	assert.Equal(t, []string{"expression"}, schema["required"])
}

func TestValidateParameters(t *testing.T) {
	schema := CreateSchema(sampleParams{})

	assert.NoError(t, ValidateParameters(map[string]any{"expression": "2+2"}, schema))

	// missing required field
	err := ValidateParameters(map[string]any{}, schema)
	require.Error(t, err)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expression", vErr.Field)

	// wrong type
	err = ValidateParameters(map[string]any{"expression": 42}, schema)
	assert.Error(t, err)

	// JSON-decoded whole numbers count as integers
	assert.NoError(t, ValidateParameters(map[string]any{"expression": "x", "precision": float64(2)}, schema))
	assert.Error(t, ValidateParameters(map[string]any{"expression": "x", "precision": 2.5}, schema))

	// fields the schema does not declare are allowed
	assert.NoError(t, ValidateParameters(map[string]any{"expression": "x", "extra": true}, schema))
}

func TestValidateParameters_RequiredAsAnySlice(t *testing.T) {
	schema := map[string]any{
		"type":       "object",
		"properties": map[string]any{"query": map[string]any{"type": "string"}},
		"required":   []any{"query"},
	}

	assert.Error(t, ValidateParameters(map[string]any{}, schema))
	assert.NoError(t, ValidateParameters(map[string]any{"query": "q"}, schema))
}
