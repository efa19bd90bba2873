package enrichment

import (
	"errors"
	"fmt"
	"time"
)

// Sentiment is the closed sentiment enumeration.
type Sentiment string

// Sentiment values.
const (
	Positive Sentiment = "positive"
	Negative Sentiment = "negative"
	Neutral  Sentiment = "neutral"
)

// Sentiments lists the accepted values in declaration order.
func Sentiments() []Sentiment { return []Sentiment{Positive, Negative, Neutral} }

// Validate reports whether s is a known sentiment.
func (s Sentiment) Validate() error {
	switch s {
	case Positive, Negative, Neutral:
		return nil
	default:
		return fmt.Errorf("invalid sentiment %q (want positive, negative or neutral)", string(s))
	}
}

// Metadata keys written into a note.
const (
	KeySummary       = "summary"
	KeyTopics        = "topics"
	KeySentiment     = "sentiment"
	KeyKeyEntities   = "key_entities"
	KeySuggestedTags = "suggested_tags"
	KeyComplexity    = "complexity_score"
	KeyTimestamp     = "enrichment_timestamp"
	KeyModel         = "llm_model"
)

// Result is the structured analysis of a note.
// ComplexityScore is not range-checked: the heuristic engine yields values up to 10.
type Result struct {
	Summary             string    `json:"summary"`
	Topics              []string  `json:"topics"`
	Sentiment           Sentiment `json:"sentiment"`
	KeyEntities         []string  `json:"key_entities"`
	SuggestedTags       []string  `json:"suggested_tags"`
	ComplexityScore     float64   `json:"complexity_score"`
	EnrichmentTimestamp time.Time `json:"enrichment_timestamp"`
	LLMModel            string    `json:"llm_model"`
}

// Validate checks the model-supplied fields.
func (r *Result) Validate() error {
	var errs []error
	if r.Summary == "" {
		errs = append(errs, errors.New("summary must not be empty"))
	}
	if r.Topics == nil {
		errs = append(errs, errors.New("topics is required"))
	}
	if err := r.Sentiment.Validate(); err != nil {
		errs = append(errs, err)
	}
	if r.KeyEntities == nil {
		errs = append(errs, errors.New("key_entities is required"))
	}
	if r.SuggestedTags == nil {
		errs = append(errs, errors.New("suggested_tags is required"))
	}
	return errors.Join(errs...)
}

// Metadata flattens the result into note metadata entries.
func (r *Result) Metadata() map[string]any {
	return map[string]any{
		KeySummary:       r.Summary,
		KeyTopics:        cloneStrings(r.Topics),
		KeySentiment:     string(r.Sentiment),
		KeyKeyEntities:   cloneStrings(r.KeyEntities),
		KeySuggestedTags: cloneStrings(r.SuggestedTags),
		KeyComplexity:    r.ComplexityScore,
		KeyTimestamp:     r.EnrichmentTimestamp.UTC(),
		KeyModel:         r.LLMModel,
	}
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
