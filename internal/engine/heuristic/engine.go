// Package heuristic implements a rule-based enrichment engine that needs no network.
package heuristic

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain/enrichment"
	"github.com/kailas-cloud/notekeep/internal/domain/note"
)

// ModelName is reported as llm_model on every result.
const ModelName = "mock-llm-service"

const (
	maxEntities   = 5
	maxComplexity = 10.0
)

// keywordGroup maps any of its words to a single label.
type keywordGroup struct {
	label string
	words []string
}

var topicGroups = []keywordGroup{
	{"meeting", []string{"meeting", "agenda"}},
	{"task", []string{"todo", "task"}},
	{"idea", []string{"idea", "concept"}},
	{"project", []string{"project"}},
	{"research", []string{"research"}},
}

var tagGroups = []keywordGroup{
	{"priority", []string{"urgent", "important", "priority"}},
	{"work", []string{"work", "job", "career"}},
	{"personal", []string{"personal", "family", "home"}},
	{"creative", []string{"idea", "inspiration", "creative"}},
}

var (
	positiveWords = []string{"good", "great", "excellent", "amazing", "wonderful", "love", "happy"}
	negativeWords = []string{"bad", "terrible", "awful", "hate", "sad", "angry", "frustrated"}
)

// Engine is the deterministic enrichment engine.
type Engine struct {
	latency time.Duration
	logger  *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLatency adds a simulated processing delay before each result.
func WithLatency(d time.Duration) Option {
	return func(e *Engine) { e.latency = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates a heuristic engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: zap.NewNop()}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Name returns the model identifier.
func (e *Engine) Name() string { return ModelName }

// Generate analyzes the note content. The only failure is ctx cancellation during the simulated delay.
func (e *Engine) Generate(ctx context.Context, n note.Note) (enrichment.Result, error) {
	if e.latency > 0 {
		timer := time.NewTimer(e.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return enrichment.Result{}, fmt.Errorf("heuristic enrichment: %w", ctx.Err())
		case <-timer.C:
		}
	}

	r := Analyze(n.Content())
	r.EnrichmentTimestamp = n.UpdatedAt()

	e.logger.Debug("Heuristic enrichment completed",
		zap.String("note_id", n.ID().String()),
		zap.Strings("topics", r.Topics),
		zap.String("sentiment", string(r.Sentiment)),
		zap.Float64("complexity_score", r.ComplexityScore),
	)
	return r, nil
}

// Analyze runs every rule over content. EnrichmentTimestamp is left zero.
func Analyze(content string) enrichment.Result {
	lower := strings.ToLower(content)
	words := strings.Fields(content)

	return enrichment.Result{
		Summary:         fmt.Sprintf("Note contains %d words", len(words)),
		Topics:          topics(lower),
		Sentiment:       sentiment(lower),
		KeyEntities:     entities(words),
		SuggestedTags:   tags(lower),
		ComplexityScore: complexity(content, words),
		LLMModel:        ModelName,
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func topics(lower string) []string {
	out := make([]string, 0, len(topicGroups))
	for _, g := range topicGroups {
		if containsAny(lower, g.words) {
			out = append(out, g.label)
		}
	}
	if len(out) == 0 {
		return []string{"general"}
	}
	return out
}

func tags(lower string) []string {
	out := make([]string, 0, len(tagGroups))
	for _, g := range tagGroups {
		if containsAny(lower, g.words) {
			out = append(out, g.label)
		}
	}
	return out
}

// sentiment counts which listed words appear at least once.
func sentiment(lower string) enrichment.Sentiment {
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	switch {
	case pos > neg:
		return enrichment.Positive
	case neg > pos:
		return enrichment.Negative
	default:
		return enrichment.Neutral
	}
}

// entities keeps tokens that start with @ or #, or start uppercase and are longer than 2 runes.
func entities(words []string) []string {
	out := make([]string, 0, maxEntities)
	seen := make(map[string]struct{})
	for _, w := range words {
		if len(out) == maxEntities {
			break
		}
		if !isEntity(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func isEntity(w string) bool {
	if strings.HasPrefix(w, "@") || strings.HasPrefix(w, "#") {
		return true
	}
	first, _ := utf8.DecodeRuneInString(w)
	return unicode.IsUpper(first) && utf8.RuneCountInString(w) > 2
}

// complexity is 0.3*avg word length + 0.1*words per sentence, capped and rounded to 2 decimals.
// Sentences come from splitting on '.', so text without a period is one sentence.
func complexity(content string, words []string) float64 {
	var avgWordLen float64
	if len(words) > 0 {
		var total int
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		avgWordLen = float64(total) / float64(len(words))
	}
	sentences := len(strings.Split(content, "."))
	avgSentenceLen := float64(len(words)) / float64(sentences)

	score := math.Min(avgWordLen*0.3+avgSentenceLen*0.1, maxComplexity)
	return math.Round(score*100) / 100
}
