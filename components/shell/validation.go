package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Payload schema names.
const (
	SchemaNotification = "notification"
	SchemaModalPress   = "modal.press"
	SchemaSection      = "section"
	SchemaPanelAction  = "panel.action"
)

// PayloadValidator validates inbound payloads against named schemas.
type PayloadValidator interface {
	Validate(name string, payload any) error
}

// JSONSchemaValidator compiles schemas lazily and validates payloads.
// Names without a schema pass.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	schemas  map[string]map[string]any
	compiled map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator. A nil map uses DefaultPayloadSchemas.
func NewJSONSchemaValidator(schemas map[string]map[string]any) *JSONSchemaValidator {
	if schemas == nil {
		schemas = DefaultPayloadSchemas()
	}
	return &JSONSchemaValidator{
		schemas:  schemas,
		compiled: make(map[string]*jsonschema.Schema),
	}
}

// Validate ensures payload satisfies the schema registered under name.
func (v *JSONSchemaValidator) Validate(name string, payload any) error {
	schema, err := v.schemaFor(name)
	if err != nil || schema == nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("shell: marshal %s payload: %w", name, err)
	}
	var normalized any
	if err := json.Unmarshal(data, &normalized); err != nil {
		return fmt.Errorf("shell: normalize %s payload: %w", name, err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("shell: %s payload failed validation: %w", name, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(name string) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[name]
	raw, known := v.schemas[name]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	if !known {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("shell: marshal schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	resource := name + ".json"
	if err := compiler.AddResource(resource, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("shell: load schema %s: %w", name, err)
	}
	compiled, err := compiler.Compile(resource)
	if err != nil {
		return nil, fmt.Errorf("shell: compile schema %s: %w", name, err)
	}
	v.mu.Lock()
	v.compiled[name] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopPayloadValidator struct{}

func (noopPayloadValidator) Validate(string, any) error { return nil }

// NormalizeValidator returns a validator that accepts everything when v is nil.
func NormalizeValidator(v PayloadValidator) PayloadValidator {
	if v == nil {
		return noopPayloadValidator{}
	}
	return v
}

// DefaultPayloadSchemas returns the schemas for the shell's inbound payloads.
func DefaultPayloadSchemas() map[string]map[string]any {
	return map[string]map[string]any{
		SchemaNotification: {
			"type":     "object",
			"required": []any{"kind", "title"},
			"properties": map[string]any{
				"kind":    map[string]any{"type": "string", "enum": []any{"success", "error", "warning", "info"}},
				"title":   map[string]any{"type": "string", "minLength": 1, "maxLength": 200},
				"message": map[string]any{"type": "string", "maxLength": 2000},
			},
		},
		SchemaModalPress: {
			"type":     "object",
			"required": []any{"modal_id", "button"},
			"properties": map[string]any{
				"modal_id": map[string]any{"type": "string", "minLength": 1},
				"button":   map[string]any{"type": "string", "minLength": 1},
				"values":   map[string]any{"type": []any{"object", "null"}},
			},
		},
		SchemaSection: {
			"type":     "object",
			"required": []any{"section"},
			"properties": map[string]any{
				"section": map[string]any{"type": "string"},
			},
		},
		SchemaPanelAction: {
			"type":     "object",
			"required": []any{"name"},
			"properties": map[string]any{
				"name":   map[string]any{"type": "string", "minLength": 1},
				"params": map[string]any{"type": []any{"object", "null"}},
			},
		},
	}
}
