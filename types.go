package notekeep

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Note is a user-owned text note.
type Note struct {
	ID        uuid.UUID
	Content   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any
}

// Stats is an aggregate view over all notes.
type Stats struct {
	TotalNotes  int
	UniqueUsers int
	StorageType string
}

// Enrichment is the structured analysis a custom Engine returns.
// A zero Timestamp defaults to the note's UpdatedAt.
type Enrichment struct {
	Summary         string
	Topics          []string
	Sentiment       string // positive, negative or neutral
	KeyEntities     []string
	SuggestedTags   []string
	ComplexityScore float64
	Timestamp       time.Time
}

// Engine produces an Enrichment for a note. Implement Name() string to
// control the llm_model metadata value.
type Engine interface {
	Enrich(ctx context.Context, n Note) (Enrichment, error)
}
