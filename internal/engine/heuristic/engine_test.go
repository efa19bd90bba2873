package heuristic

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/kailas-cloud/notekeep/internal/domain/enrichment"
	"github.com/kailas-cloud/notekeep/internal/domain/note"
)

func TestAnalyze_Topics(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"Team meeting about the project", []string{"meeting", "project"}},
		{"AGENDA for the TODO list", []string{"meeting", "task"}},
		{"a new concept and some research", []string{"idea", "research"}},
		{"groceries: milk, eggs", []string{"general"}},
		{"", []string{"general"}},
	}
	for _, tc := range tests {
		got := Analyze(tc.content).Topics
		if !slices.Equal(got, tc.want) {
			t.Errorf("topics(%q) = %v, want %v", tc.content, got, tc.want)
		}
	}
}

func TestAnalyze_Sentiment(t *testing.T) {
	tests := []struct {
		content string
		want    enrichment.Sentiment
	}{
		{"what a great and happy day", enrichment.Positive},
		{"terrible, awful traffic but good coffee", enrichment.Negative},
		{"good and bad", enrichment.Neutral},
		{"nothing to see", enrichment.Neutral},
		{"", enrichment.Neutral},
		{"I LOVE it", enrichment.Positive},
	}
	for _, tc := range tests {
		if got := Analyze(tc.content).Sentiment; got != tc.want {
			t.Errorf("sentiment(%q) = %q, want %q", tc.content, got, tc.want)
		}
	}
}

func TestAnalyze_Entities(t *testing.T) {
	r := Analyze("Met Alice and Bob at Google with @carol about #launch and Alice again plus Zurich Paris")

	if len(r.KeyEntities) > 5 {
		t.Fatalf("expected at most 5 entities, got %d: %v", len(r.KeyEntities), r.KeyEntities)
	}
	seen := map[string]bool{}
	for _, e := range r.KeyEntities {
		if seen[e] {
			t.Errorf("duplicate entity %q", e)
		}
		seen[e] = true
		upper := e[0] >= 'A' && e[0] <= 'Z' && len(e) > 2
		tagged := strings.HasPrefix(e, "@") || strings.HasPrefix(e, "#")
		if !upper && !tagged {
			t.Errorf("entity %q does not qualify", e)
		}
	}
	if seen["Bob"] != true {
		t.Errorf("expected Bob in %v", r.KeyEntities)
	}
}

func TestAnalyze_EntitiesSkipShortCapitals(t *testing.T) {
	r := Analyze("I am OK at it")
	if len(r.KeyEntities) != 0 {
		t.Errorf("expected no entities, got %v", r.KeyEntities)
	}
}

func TestAnalyze_Tags(t *testing.T) {
	r := Analyze("urgent work idea for the family")
	want := []string{"priority", "work", "personal", "creative"}
	if !slices.Equal(r.SuggestedTags, want) {
		t.Errorf("tags = %v, want %v", r.SuggestedTags, want)
	}

	empty := Analyze("plain text")
	if empty.SuggestedTags == nil || len(empty.SuggestedTags) != 0 {
		t.Errorf("expected empty non-nil tags, got %v", empty.SuggestedTags)
	}
}

func TestAnalyze_Complexity(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"empty", "", 0},
		{"whitespace only", "   \n\t ", 0},
		// 26 runes / 5 words * 0.3 + 5 words / 1 sentence * 0.1
		{"single sentence", "Team meeting about the project", 2.06},
		// 14 runes / 4 words * 0.3 + 4 words / 3 split parts * 0.1
		{"two periods", "one two. six ten.", 1.18},
		{"capped", strings.Repeat("x", 60), 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Analyze(tc.content).ComplexityScore
			if got != tc.want {
				t.Errorf("complexity(%q) = %v, want %v", tc.content, got, tc.want)
			}
		})
	}
}

func TestAnalyze_Summary(t *testing.T) {
	if got := Analyze("one two  three").Summary; got != "Note contains 3 words" {
		t.Errorf("unexpected summary %q", got)
	}
	if got := Analyze("").Summary; got != "Note contains 0 words" {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestGenerate(t *testing.T) {
	ts := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	n := note.New("Team meeting about the project", "u1", ts)

	r, err := New().Generate(context.Background(), n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.EnrichmentTimestamp.Equal(ts) {
		t.Errorf("expected timestamp %v, got %v", ts, r.EnrichmentTimestamp)
	}
	if r.LLMModel != ModelName {
		t.Errorf("expected model %q, got %q", ModelName, r.LLMModel)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("result must validate: %v", err)
	}
}

func TestGenerate_LatencyHonorsCancel(t *testing.T) {
	e := New(WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Generate(ctx, note.New("x", "u1", time.Now()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_Latency(t *testing.T) {
	e := New(WithLatency(20 * time.Millisecond))
	start := time.Now()
	if _, err := e.Generate(context.Background(), note.New("x", "u1", start)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Errorf("expected simulated delay, took %v", elapsed)
	}
}
