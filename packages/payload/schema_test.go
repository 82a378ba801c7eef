package payload

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recipeSchema = `{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"servings": {"type": "integer", "minimum": 1}
	}
}`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipe.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(recipeSchema), 0o644))
	return path
}

func TestValidateSchema_Valid(t *testing.T) {
	path := writeSchema(t)

	err := ValidateSchema(Payload{"name": "Test Recipe", "servings": 4}, path)

	assert.NoError(t, err)
}

func TestValidateSchema_Violations(t *testing.T) {
	path := writeSchema(t)

	err := ValidateSchema(Payload{"servings": 0}, path)

	require.Error(t, err)
	var schemaErr *SchemaError
	require.True(t, errors.As(err, &schemaErr))
	assert.NotEmpty(t, schemaErr.Violations)
	assert.Contains(t, err.Error(), "schema validation")
}

func TestValidateSchema_MissingSchemaFile(t *testing.T) {
	err := ValidateSchema(Payload{"name": "x"}, "/nonexistent/schema.json")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read schema file")
}
