package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SessionSchema returns the JSON Schema of session files.
func SessionSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	schema := r.Reflect(&Session{})
	schema.Title = "zindekal session"
	schema.Description = "Tabs, categories, videos and tracks of a break"
	return json.MarshalIndent(schema, "", "  ")
}
