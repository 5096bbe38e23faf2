package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONSchemaValidatorNotification(t *testing.T) {
	validator := NewJSONSchemaValidator(nil)

	require.NoError(t, validator.Validate(SchemaNotification, map[string]any{
		"kind": "success", "title": "Saved", "message": "ok",
	}))
	require.Error(t, validator.Validate(SchemaNotification, map[string]any{"kind": "success"}))
	require.Error(t, validator.Validate(SchemaNotification, map[string]any{"kind": "fatal", "title": "x"}))
	require.Error(t, validator.Validate(SchemaNotification, map[string]any{"kind": "info", "title": ""}))
}

func TestJSONSchemaValidatorStructPayload(t *testing.T) {
	type press struct {
		ModalID string         `json:"modal_id"`
		Button  string         `json:"button"`
		Values  map[string]any `json:"values"`
	}
	validator := NewJSONSchemaValidator(nil)
	require.NoError(t, validator.Validate(SchemaModalPress, press{ModalID: "m-1", Button: "Delete"}))
	require.Error(t, validator.Validate(SchemaModalPress, press{ModalID: "m-1"}))
}

func TestJSONSchemaValidatorUnknownSchemaPasses(t *testing.T) {
	validator := NewJSONSchemaValidator(map[string]map[string]any{})
	assert.NoError(t, validator.Validate("anything", 42))
}

func TestJSONSchemaValidatorBadSchema(t *testing.T) {
	validator := NewJSONSchemaValidator(map[string]map[string]any{
		"broken": {"type": 12},
	})
	assert.Error(t, validator.Validate("broken", map[string]any{}))
}

func TestNormalizeValidator(t *testing.T) {
	assert.NoError(t, NormalizeValidator(nil).Validate(SchemaNotification, nil))
	custom := NewJSONSchemaValidator(nil)
	assert.Same(t, custom, NormalizeValidator(custom))
}
