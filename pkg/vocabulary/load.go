// pkg/vocabulary/load.go
package vocabulary

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// extensionSchema constrains vocabulary extension files. Validation happens
// before unmarshalling so a malformed file fails with field-level messages
// instead of a zero-valued merge.
var extensionSchema = map[string]interface{}{
	"type":                 "object",
	"additionalProperties": false,
	"properties": map[string]interface{}{
		"occupations": map[string]interface{}{
			"type": "object",
			"additionalProperties": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string", "minLength": 1},
				"minItems": 1,
			},
		},
		"sectors": map[string]interface{}{
			"type": "object",
			"additionalProperties": map[string]interface{}{
				"type":     "array",
				"items":    map[string]interface{}{"type": "string", "minLength": 1},
				"minItems": 1,
			},
		},
		"caste_codes": map[string]interface{}{
			"type":  "array",
			"items": map[string]interface{}{"type": "string", "minLength": 1},
		},
		"caste_phrases": map[string]interface{}{
			"type": "object",
			"additionalProperties": map[string]interface{}{
				"type":      "string",
				"minLength": 1,
			},
		},
	},
}

// Load reads a vocabulary extension file and merges it over the built-in
// tables. The file must pass schema validation; any violation fails the load
// so a typo cannot silently shrink the vocabulary.
func Load(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}
	return Parse(data)
}

// Parse validates and merges raw extension JSON over the built-in tables.
func Parse(data []byte) (*Tables, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vocabulary file is not valid JSON: %w", err)
	}

	schemaLoader := gojsonschema.NewGoLoader(extensionSchema)
	docLoader := gojsonschema.NewGoLoader(doc)
	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return nil, fmt.Errorf("vocabulary schema validation failed: %w", err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, violation := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", violation.Field(), violation.Description()))
		}
		return nil, fmt.Errorf("invalid vocabulary file: %s", strings.Join(details, "; "))
	}

	var ext extension
	if err := json.Unmarshal(data, &ext); err != nil {
		return nil, fmt.Errorf("decode vocabulary file: %w", err)
	}
	return merge(builtin, ext), nil
}
