package domain

import (
	"context"

	"github.com/kailas-cloud/notekeep/internal/domain/enrichment"
	"github.com/kailas-cloud/notekeep/internal/domain/note"
)

// Engine produces an enrichment result for a note.
type Engine interface {
	Generate(ctx context.Context, n note.Note) (enrichment.Result, error)
}

// HealthChecker verifies model provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
