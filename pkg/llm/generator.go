package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator produces text completions from prompts
type Generator interface {
	Complete(ctx context.Context, prompt string, opts map[string]any) (string, error)
	Model() string
}

// Option keys understood by the generators.
const (
	// OptSchema is a JSON schema (map[string]any) the answer must follow.
	OptSchema = "schema"
	// OptSchemaName names the schema for providers that require one.
	OptSchemaName  = "schema_name"
	OptMaxTokens   = "max_tokens"
	OptTemperature = "temperature"
)

// SchemaFor reflects a strict JSON schema for v, suitable for structured output.
func SchemaFor(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	raw, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schema, nil
}
