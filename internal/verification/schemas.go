// internal/verification/schemas.go
package verification

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"tutorlink-client/internal/common/errors"
)

// Structural guard behind the form-level rules in payloads.go: after a payload
// passes Validate, its marshalled shape is checked against the stage schema so
// a miswired form can never put a foreign payload on the wire for a stage.
var stageSchemas = map[StageKey]string{
	StageExperience: `{
		"type": "object",
		"required": ["references"],
		"properties": {
			"references": {
				"type": "array",
				"minItems": 2,
				"items": {
					"type": "object",
					"required": ["name", "email", "phone"],
					"properties": {
						"name":  {"type": "string", "minLength": 1},
						"email": {"type": "string", "minLength": 3},
						"phone": {"type": "string", "minLength": 6}
					}
				}
			},
			"yearsTeaching": {"type": "integer", "minimum": 0},
			"summary":       {"type": "string"}
		}
	}`,
	StageDemo: `{
		"type": "object",
		"required": ["videoUrl", "topic"],
		"properties": {
			"videoUrl":        {"type": "string", "minLength": 1},
			"topic":           {"type": "string", "minLength": 1},
			"durationMinutes": {"type": "integer", "minimum": 0}
		}
	}`,
	StageEthics: `{
		"type": "object",
		"properties": {
			"backgroundCheckConsent": {"type": "boolean"},
			"noCriminalRecord":       {"type": "boolean"},
			"codeOfConductAccepted":  {"type": "boolean"}
		}
	}`,
	StageLanguage: `{
		"type": "object",
		"required": ["language", "testScore"],
		"properties": {
			"language":  {"type": "string", "minLength": 1},
			"testScore": {"type": "string", "pattern": "^[0-9]+(\\.[0-9]+)?$"},
			"testName":  {"type": "string"}
		}
	}`,
	StageIntroCall: `{
		"type": "object",
		"required": ["scheduledDate"],
		"properties": {
			"scheduledDate": {"type": "string", "minLength": 1},
			"timezone":      {"type": "string"}
		}
	}`,
	StageCurriculum: `{
		"type": "object",
		"required": ["tests"],
		"properties": {
			"tests": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["curriculum"],
					"properties": {
						"curriculum": {"type": "string", "minLength": 1},
						"score":      {"type": "number"}
					}
				}
			},
			"lessonPlanUrl":   {"type": "string"},
			"lessonPlanTopic": {"type": "string"}
		}
	}`,
}

var compiledSchemas = map[StageKey]*gojsonschema.Schema{}

func init() {
	for key, raw := range stageSchemas {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
		if err != nil {
			panic(fmt.Sprintf("invalid schema for stage %s: %v", key, err))
		}
		compiledSchemas[key] = schema
	}
}

// ValidateSchema checks the marshalled payload against its stage schema.
// Stages without a schema (credentials, whose body is a multipart upload)
// pass through.
func ValidateSchema(p Payload) error {
	schema, ok := compiledSchemas[p.StageKey()]
	if !ok {
		return nil
	}

	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", p.StageKey(), err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("schema validation for %s: %w", p.StageKey(), err)
	}
	if !result.Valid() {
		first := result.Errors()[0]
		return errors.NewValidationError(first.Description())
	}
	return nil
}
