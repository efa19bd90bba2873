// Package notekeep is an in-process notes client: the same store, engines and
// enrichment orchestrator the HTTP service uses, without the HTTP layer.
package notekeep

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/domain/enrichment"
	domnote "github.com/kailas-cloud/notekeep/internal/domain/note"
	"github.com/kailas-cloud/notekeep/internal/domain/note/patch"
	"github.com/kailas-cloud/notekeep/internal/engine/heuristic"
	noterepo "github.com/kailas-cloud/notekeep/internal/repository/note"
	noteuc "github.com/kailas-cloud/notekeep/internal/usecase/note"
)

// Client is the notekeep SDK entry point. It is safe for concurrent use.
type Client struct {
	notes *noteuc.Service
}

// New creates a Client backed by an in-memory store.
// Without WithEngine the deterministic heuristic engine is used.
func New(opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	var repoOpts []noterepo.Option
	if cfg.now != nil {
		repoOpts = append(repoOpts, noterepo.WithClock(cfg.now))
	}

	var engine domain.Engine
	if cfg.engine != nil {
		engine = &engineAdapter{inner: cfg.engine}
	} else {
		hopts := []heuristic.Option{heuristic.WithLatency(cfg.latency)}
		if cfg.logger != nil {
			hopts = append(hopts, heuristic.WithLogger(cfg.logger))
		}
		engine = heuristic.New(hopts...)
	}

	return &Client{notes: noteuc.New(noterepo.New(repoOpts...), engine)}
}

// Create stores a new note owned by userID.
func (c *Client) Create(ctx context.Context, content, userID string) (Note, error) {
	n, err := c.notes.Create(ctx, content, userID)
	if err != nil {
		return Note{}, fmt.Errorf("create: %w", err)
	}
	return fromDomain(n), nil
}

// List returns the notes owned by userID.
func (c *Client) List(ctx context.Context, userID string) ([]Note, error) {
	notes, err := c.notes.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, fromDomain(n))
	}
	return out, nil
}

// Get returns a note. ErrNotFound and ErrUnauthorized are reported via errors.Is.
func (c *Client) Get(ctx context.Context, id uuid.UUID, userID string) (Note, error) {
	n, err := c.notes.Get(ctx, id, userID)
	if err != nil {
		return Note{}, fmt.Errorf("get: %w", err)
	}
	return fromDomain(n), nil
}

// Update replaces content when content is non-nil and merges metadata key-wise.
func (c *Client) Update(
	ctx context.Context, id uuid.UUID, userID string,
	content *string, metadata map[string]any,
) (Note, error) {
	n, err := c.notes.Update(ctx, id, userID, patch.New(content, metadata))
	if err != nil {
		return Note{}, fmt.Errorf("update: %w", err)
	}
	return fromDomain(n), nil
}

// Delete removes a note.
func (c *Client) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	if err := c.notes.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// Enrich runs the engine over the note and merges the result into its metadata.
func (c *Client) Enrich(ctx context.Context, id uuid.UUID, userID string) (Note, error) {
	n, err := c.notes.Enrich(ctx, id, userID)
	if err != nil {
		return Note{}, fmt.Errorf("enrich: %w", err)
	}
	return fromDomain(n), nil
}

// Stats returns aggregate counts over all notes.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	st, err := c.notes.Stats(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("stats: %w", err)
	}
	return Stats{
		TotalNotes:  st.TotalNotes,
		UniqueUsers: st.UniqueUsers,
		StorageType: st.StorageType,
	}, nil
}

// engineAdapter wraps a public Engine to satisfy domain.Engine.
type engineAdapter struct {
	inner Engine
}

func (a *engineAdapter) Name() string {
	if n, ok := a.inner.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "custom"
}

func (a *engineAdapter) Generate(ctx context.Context, n domnote.Note) (enrichment.Result, error) {
	e, err := a.inner.Enrich(ctx, fromDomain(n))
	if err != nil {
		return enrichment.Result{}, fmt.Errorf("custom engine: %w", err)
	}
	ts := e.Timestamp
	if ts.IsZero() {
		ts = n.UpdatedAt()
	}
	return enrichment.Result{
		Summary:             e.Summary,
		Topics:              nonNil(e.Topics),
		Sentiment:           enrichment.Sentiment(e.Sentiment),
		KeyEntities:         nonNil(e.KeyEntities),
		SuggestedTags:       nonNil(e.SuggestedTags),
		ComplexityScore:     e.ComplexityScore,
		EnrichmentTimestamp: ts.UTC(),
		LLMModel:            a.Name(),
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func fromDomain(n domnote.Note) Note {
	md := make(map[string]any, len(n.Metadata()))
	for k, v := range n.Metadata() {
		md[k] = v
	}
	return Note{
		ID:        n.ID(),
		Content:   n.Content(),
		UserID:    n.UserID(),
		CreatedAt: n.CreatedAt(),
		UpdatedAt: n.UpdatedAt(),
		Metadata:  md,
	}
}
