package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// catalogSchema is the JSON schema content files must satisfy before the
// validity filter runs. It checks shape, not cross-field consistency; the
// filter handles the rest (index ranges, per-locale completeness).
var catalogSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"locales": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string", "minLength": 1},
			"minItems": 1,
		},
		"letters": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"glyph":     map[string]any{"type": "string", "minLength": 1},
					"name":      map[string]any{"type": "string", "minLength": 1},
					"audio_key": map[string]any{"type": "string"},
				},
				"required":             []any{"glyph", "name"},
				"additionalProperties": false,
			},
		},
		"lessons": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":       map[string]any{"type": "string", "minLength": 1},
					"skill_id": map[string]any{"type": "string", "minLength": 1},
					"title": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "string"},
					},
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":       map[string]any{"type": "string", "minLength": 1},
								"skill_id": map[string]any{"type": "string", "minLength": 1},
								"kind": map[string]any{
									"type": "string",
									"enum": []any{
										"multiple_choice", "true_false", "drag_match",
										"order_sequence", "production", "audio_quiz", "error_spot",
									},
								},
								"text": map[string]any{
									"type":                 "object",
									"additionalProperties": map[string]any{"type": "string"},
								},
								"options": map[string]any{
									"type": "object",
									"additionalProperties": map[string]any{
										"type":  "array",
										"items": map[string]any{"type": "string"},
									},
								},
								"pairs": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type": "object",
										"properties": map[string]any{
											"left":  map[string]any{"type": "string"},
											"right": map[string]any{"type": "string"},
										},
										"required":             []any{"left", "right"},
										"additionalProperties": false,
									},
								},
								"sequence": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "string"},
								},
								"correct_index": map[string]any{"type": "integer"},
								"correct_order": map[string]any{
									"type":  "array",
									"items": map[string]any{"type": "integer"},
								},
								"shuffle":   map[string]any{"type": "boolean"},
								"audio_key": map[string]any{"type": "string"},
							},
							"required":             []any{"id", "skill_id", "kind", "text"},
							"additionalProperties": false,
						},
					},
				},
				"required":             []any{"id", "skill_id", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"locales", "lessons"},
	"additionalProperties": false,
}

// validateSchema checks raw content bytes against the catalog schema.
func validateSchema(raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	c := jsonschema.NewCompiler()
	const schemaURL = "schema://letterly-catalog.json"
	if err := c.AddResource(schemaURL, catalogSchema); err != nil {
		return fmt.Errorf("add resource: %w", err)
	}
	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
