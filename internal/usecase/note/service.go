// Package note implements note CRUD and the enrichment orchestrator.
package note

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	domnote "github.com/kailas-cloud/notekeep/internal/domain/note"
	"github.com/kailas-cloud/notekeep/internal/domain/note/patch"
	"github.com/kailas-cloud/notekeep/internal/logger"
	"github.com/kailas-cloud/notekeep/internal/metrics"
)

// Service handles note CRUD and enrichment.
type Service struct {
	repo       Repository
	engine     domain.Engine
	engineName string
}

// New creates a note service. The engine label for metrics comes from its Name method when present.
func New(repo Repository, engine domain.Engine) *Service {
	name := "unknown"
	if n, ok := engine.(interface{ Name() string }); ok {
		name = n.Name()
	}
	return &Service{repo: repo, engine: engine, engineName: name}
}

// Create stores a new note.
func (s *Service) Create(ctx context.Context, content, userID string) (domnote.Note, error) {
	n, err := s.repo.Create(ctx, content, userID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

// List returns a user's notes, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]domnote.Note, error) {
	notes, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Get returns a note owned by userID.
func (s *Service) Get(ctx context.Context, id uuid.UUID, userID string) (domnote.Note, error) {
	n, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Update applies a partial update. An empty patch returns the note unchanged.
func (s *Service) Update(ctx context.Context, id uuid.UUID, userID string, p patch.Patch) (domnote.Note, error) {
	n, err := s.repo.Update(ctx, id, userID, p)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

// Delete removes a note. A missing note is reported as domain.ErrNotFound.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	deleted, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if !deleted {
		return fmt.Errorf("delete note: %w", domain.ErrNotFound)
	}
	return nil
}

// Stats reports collection-wide counters.
func (s *Service) Stats(ctx context.Context) (domnote.Stats, error) {
	st, err := s.repo.Stats(ctx)
	if err != nil {
		return domnote.Stats{}, fmt.Errorf("note stats: %w", err)
	}
	return st, nil
}

// Enrich analyzes a note and merges the result into its metadata.
// Content and updated_at are untouched. Engine failures surface as *domain.EnrichmentFailedError
// and leave the note as it was.
func (s *Service) Enrich(ctx context.Context, id uuid.UUID, userID string) (domnote.Note, error) {
	n, err := s.repo.Get(ctx, id, userID)
	if err != nil {
		return domnote.Note{}, fmt.Errorf("get note: %w", err)
	}

	ctx = logger.With(ctx, zap.String("note_id", id.String()), zap.String("engine", s.engineName))

	result, err := s.engine.Generate(ctx, n)
	if err != nil {
		metrics.EnrichmentRequestsTotal.WithLabelValues(s.engineName, "error").Inc()
		logger.FromContext(ctx).Error("Note enrichment failed",
			zap.Bool("exhausted", errors.Is(err, domain.ErrEnrichmentExhausted)),
			zap.Error(err),
		)
		return domnote.Note{}, domain.NewEnrichmentFailed(err)
	}

	updated, err := s.repo.Update(ctx, id, userID, patch.Metadata(result.Metadata()))
	if err != nil {
		metrics.EnrichmentRequestsTotal.WithLabelValues(s.engineName, "error").Inc()
		return domnote.Note{}, fmt.Errorf("store enrichment: %w", err)
	}

	metrics.EnrichmentRequestsTotal.WithLabelValues(s.engineName, "success").Inc()
	logger.FromContext(ctx).Debug("Note enriched",
		zap.String("sentiment", string(result.Sentiment)),
	)
	return updated, nil
}
