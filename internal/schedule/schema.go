package schedule

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// DatabaseSchema is the JSON schema for the persisted artifact.
const DatabaseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["roster", "records"],
  "properties": {
    "roster": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "name": {"type": "string", "minLength": 1},
          "subject": {"type": "string"}
        }
      }
    },
    "records": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["day", "period", "time", "class_section", "teacher_codes"],
        "properties": {
          "day": {"enum": ["MON", "TUE", "WED", "THU", "FRI", "OTHER"]},
          "period": {"type": "integer"},
          "period_label": {"type": "string"},
          "time": {"type": "string"},
          "class_section": {"type": "string", "pattern": "^[A-Z]+-[0-9]+$"},
          "teacher_codes": {
            "type": "array",
            "minItems": 1,
            "items": {"type": "string", "pattern": "^[0-9]+[A-Z]?$"}
          }
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func databaseSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("schedule-database.json", DatabaseSchema)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks raw artifact bytes against DatabaseSchema.
func ValidateJSON(data []byte) error {
	sch, err := databaseSchema()
	if err != nil {
		return fmt.Errorf("compile database schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDatabase, err)
	}
	if err := sch.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDatabase, err)
	}
	return nil
}
