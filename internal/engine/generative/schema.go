package generative

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/kailas-cloud/notekeep/internal/domain/enrichment"
)

// responseSchema describes the fields the model must supply.
// enrichment_timestamp and llm_model are engine-assigned and therefore absent.
func responseSchema() *jsonschema.Schema {
	stringList := func(desc string) *jsonschema.Schema {
		return &jsonschema.Schema{
			Type:        "array",
			Description: desc,
			Items:       &jsonschema.Schema{Type: "string"},
		}
	}

	sentiments := make([]any, 0, len(enrichment.Sentiments()))
	for _, s := range enrichment.Sentiments() {
		sentiments = append(sentiments, string(s))
	}

	minLen := 1
	return &jsonschema.Schema{
		Type:  "object",
		Title: "NoteEnrichment",
		Properties: map[string]*jsonschema.Schema{
			enrichment.KeySummary: {
				Type:        "string",
				Description: "Concise summary of the note content",
				MinLength:   &minLen,
			},
			enrichment.KeyTopics: stringList("Topics extracted from the note content"),
			enrichment.KeySentiment: {
				Type:        "string",
				Description: "Overall sentiment of the note content",
				Enum:        sentiments,
			},
			enrichment.KeyKeyEntities:   stringList("Key entities (people, places, concepts) in the note"),
			enrichment.KeySuggestedTags: stringList("Tags suggested for categorizing the note"),
			enrichment.KeyComplexity: {
				Type:        "number",
				Description: "Complexity of the note content on a 0.0 to 1.0 scale",
			},
		},
		Required: []string{
			enrichment.KeySummary,
			enrichment.KeyTopics,
			enrichment.KeySentiment,
			enrichment.KeyKeyEntities,
			enrichment.KeySuggestedTags,
			enrichment.KeyComplexity,
		},
	}
}

// schemaValidator holds the resolved schema and its prompt rendering.
type schemaValidator struct {
	resolved *jsonschema.Resolved
	text     string
}

func newSchemaValidator() (*schemaValidator, error) {
	s := responseSchema()

	text, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal response schema: %w", err)
	}

	resolved, err := s.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve response schema: %w", err)
	}

	return &schemaValidator{resolved: resolved, text: string(text)}, nil
}

// Validate checks a decoded JSON instance against the schema.
func (v *schemaValidator) Validate(instance any) error {
	if err := v.resolved.Validate(instance); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}
