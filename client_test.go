package notekeep

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

type stubEngine struct {
	out   Enrichment
	err   error
	calls int
}

func (s *stubEngine) Name() string { return "stub-model" }

func (s *stubEngine) Enrich(_ context.Context, _ Note) (Enrichment, error) {
	s.calls++
	return s.out, s.err
}

func TestClient_CRUD(t *testing.T) {
	ctx := context.Background()
	c := New()

	n, err := c.Create(ctx, "first draft", "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.ID == uuid.Nil || n.UserID != "u1" {
		t.Fatalf("unexpected note %+v", n)
	}

	content := "second draft"
	updated, err := c.Update(ctx, n.ID, "u1", &content, map[string]any{"pinned": true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Content != content || updated.Metadata["pinned"] != true {
		t.Errorf("unexpected update %+v", updated)
	}

	list, err := c.List(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 note, got %d", len(list))
	}

	if err := c.Delete(ctx, n.ID, "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Get(ctx, n.ID, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Ownership(t *testing.T) {
	ctx := context.Background()
	c := New()

	n, _ := c.Create(ctx, "mine", "owner")
	if _, err := c.Get(ctx, n.ID, "intruder"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if err := c.Delete(ctx, n.ID, "intruder"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized on delete, got %v", err)
	}
}

func TestClient_MetadataIsACopy(t *testing.T) {
	ctx := context.Background()
	c := New()

	n, _ := c.Create(ctx, "x", "u1")
	n, _ = c.Update(ctx, n.ID, "u1", nil, map[string]any{"k": "v"})
	n.Metadata["k"] = "mutated"

	got, _ := c.Get(ctx, n.ID, "u1")
	if got.Metadata["k"] != "v" {
		t.Errorf("caller mutation leaked into store: %v", got.Metadata)
	}
}

func TestClient_EnrichHeuristic(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := New(WithClock(func() time.Time { return fixed }))

	n, _ := c.Create(ctx, "Great meeting about the project budget", "u1")
	got, err := c.Enrich(ctx, n.ID, "u1")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if got.Metadata["llm_model"] != "mock-llm-service" {
		t.Errorf("llm_model = %v", got.Metadata["llm_model"])
	}
	if ts, ok := got.Metadata["enrichment_timestamp"].(time.Time); !ok || !ts.Equal(fixed) {
		t.Errorf("enrichment_timestamp = %v, want %v", got.Metadata["enrichment_timestamp"], fixed)
	}
	if !got.UpdatedAt.Equal(fixed) {
		t.Errorf("updated_at moved: %v", got.UpdatedAt)
	}
}

func TestClient_EnrichCustomEngine(t *testing.T) {
	ctx := context.Background()
	eng := &stubEngine{out: Enrichment{
		Summary:   "short",
		Sentiment: "neutral",
		Topics:    []string{"work"},
	}}
	c := New(WithEngine(eng))

	n, _ := c.Create(ctx, "text", "u1")
	got, err := c.Enrich(ctx, n.ID, "u1")
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if eng.calls != 1 {
		t.Errorf("expected 1 engine call, got %d", eng.calls)
	}
	if got.Metadata["summary"] != "short" || got.Metadata["llm_model"] != "stub-model" {
		t.Errorf("unexpected metadata %v", got.Metadata)
	}
	tags, ok := got.Metadata["suggested_tags"].([]string)
	if !ok || tags == nil {
		t.Errorf("suggested_tags should be an empty list, got %#v", got.Metadata["suggested_tags"])
	}
}

func TestClient_EnrichFailure(t *testing.T) {
	ctx := context.Background()
	c := New(WithEngine(&stubEngine{err: errors.New("boom")}))

	n, _ := c.Create(ctx, "text", "u1")
	if _, err := c.Enrich(ctx, n.ID, "u1"); !errors.Is(err, ErrEnrichmentFailed) {
		t.Fatalf("expected ErrEnrichmentFailed, got %v", err)
	}

	got, _ := c.Get(ctx, n.ID, "u1")
	if len(got.Metadata) != 0 {
		t.Errorf("failed enrichment changed metadata: %v", got.Metadata)
	}
}

func TestClient_Stats(t *testing.T) {
	ctx := context.Background()
	c := New()

	_, _ = c.Create(ctx, "a", "u1")
	_, _ = c.Create(ctx, "b", "u2")
	_, _ = c.Create(ctx, "c", "u2")

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalNotes != 3 || st.UniqueUsers != 2 || st.StorageType != "in_memory" {
		t.Errorf("unexpected stats %+v", st)
	}
}
