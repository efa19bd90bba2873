// Package generative implements the model-backed enrichment engine:
// prompt, schema, JSON extraction and a bounded retry loop with error feedback.
package generative

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/domain/enrichment"
	"github.com/kailas-cloud/notekeep/internal/domain/note"
	"github.com/kailas-cloud/notekeep/internal/metrics"
)

// MaxAttempts is the total number of model calls per enrichment.
const MaxAttempts = 3

// Settings are the sampling settings sent with every request.
type Settings struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// DefaultSettings biases the model toward deterministic structured output.
func DefaultSettings() Settings {
	return Settings{
		Temperature:     0.1,
		TopP:            0.8,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
}

// Engine is the generative enrichment engine.
type Engine struct {
	model    domain.TextGenerator
	settings Settings
	timeout  time.Duration
	schema   *schemaValidator
	now      func() time.Time
	logger   *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithSettings overrides the sampling settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) { e.settings = s }
}

// WithTimeout bounds each model call. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithClock overrides the time source for enrichment_timestamp.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates a generative engine over model.
func New(model domain.TextGenerator, opts ...Option) (*Engine, error) {
	if model == nil {
		return nil, fmt.Errorf("model is required")
	}
	schema, err := newSchemaValidator()
	if err != nil {
		return nil, err
	}
	e := &Engine{
		model:    model,
		settings: DefaultSettings(),
		schema:   schema,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Name returns the underlying model identifier.
func (e *Engine) Name() string { return e.model.Name() }

// HealthCheck delegates to the model when it supports health checks.
func (e *Engine) HealthCheck(ctx context.Context) error {
	if hc, ok := e.model.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("model health check: %w", err)
		}
	}
	return nil
}

type outcomeKind int

const (
	outcomeValid outcomeKind = iota
	outcomeInvalid
	outcomeFatal
)

func (k outcomeKind) String() string {
	switch k {
	case outcomeValid:
		return "valid"
	case outcomeInvalid:
		return "invalid"
	default:
		return "fatal"
	}
}

// outcome is the tagged result of one attempt.
type outcome struct {
	kind    outcomeKind
	result  enrichment.Result
	invalid *domain.ValidationError
	err     error
}

// Generate runs up to MaxAttempts model calls. Schema validation failures feed the next prompt;
// any other failure, including a reply that is not JSON, aborts immediately.
func (e *Engine) Generate(ctx context.Context, n note.Note) (enrichment.Result, error) {
	var lastErr string
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		out := e.attempt(ctx, n.Content(), lastErr)
		metrics.EnrichmentAttemptsTotal.WithLabelValues(e.model.Name(), out.kind.String()).Inc()

		switch out.kind {
		case outcomeValid:
			e.logger.Debug("Generative enrichment completed",
				zap.String("note_id", n.ID().String()),
				zap.String("model", e.model.Name()),
				zap.Int("attempt", attempt),
			)
			return out.result, nil
		case outcomeInvalid:
			lastErr = out.invalid.Reason
			e.logger.Warn("Enrichment reply failed validation",
				zap.String("note_id", n.ID().String()),
				zap.String("model", e.model.Name()),
				zap.Int("attempt", attempt),
				zap.String("reason", lastErr),
			)
		default:
			e.logger.Error("Enrichment model call failed",
				zap.String("note_id", n.ID().String()),
				zap.String("model", e.model.Name()),
				zap.Int("attempt", attempt),
				zap.Error(out.err),
			)
			return enrichment.Result{}, fmt.Errorf("attempt %d: %w", attempt, out.err)
		}
	}
	return enrichment.Result{}, &domain.ExhaustedError{Attempts: MaxAttempts, LastError: lastErr}
}

func (e *Engine) attempt(ctx context.Context, content, previousError string) outcome {
	prompt, err := buildPrompt(content, e.schema.text, previousError)
	if err != nil {
		return outcome{kind: outcomeFatal, err: err}
	}

	callCtx := ctx
	if e.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	res, err := e.model.Generate(callCtx, domain.GenerationRequest{
		Prompt:          prompt,
		Temperature:     e.settings.Temperature,
		TopP:            e.settings.TopP,
		TopK:            e.settings.TopK,
		MaxOutputTokens: e.settings.MaxOutputTokens,
		JSONResponse:    true,
	})
	if err != nil {
		return outcome{kind: outcomeFatal, err: fmt.Errorf("%w: %w", domain.ErrEnrichmentTransport, err)}
	}
	domain.UsageFromContext(ctx).AddAttempt(res.PromptTokens, res.TotalTokens)

	if strings.TrimSpace(res.Text) == "" {
		return outcome{kind: outcomeFatal, err: fmt.Errorf("%w: empty reply", domain.ErrEnrichmentTransport)}
	}

	// Unparseable JSON is a transport-level failure; only schema failures are retried.
	canonical, err := canonicalize(extractJSON(res.Text))
	if err != nil {
		return outcome{kind: outcomeFatal, err: fmt.Errorf("%w: %w", domain.ErrEnrichmentTransport, err)}
	}

	result, verr := e.parse(canonical)
	if verr != nil {
		return outcome{kind: outcomeInvalid, invalid: verr}
	}
	result.EnrichmentTimestamp = e.now()
	result.LLMModel = e.model.Name()
	return outcome{kind: outcomeValid, result: result}
}

// modelOutput mirrors the schema; unknown fields are ignored.
type modelOutput struct {
	Summary         string               `json:"summary"`
	Topics          []string             `json:"topics"`
	Sentiment       enrichment.Sentiment `json:"sentiment"`
	KeyEntities     []string             `json:"key_entities"`
	SuggestedTags   []string             `json:"suggested_tags"`
	ComplexityScore float64              `json:"complexity_score"`
}

// parse validates a canonical JSON reply against the schema and the result invariants.
func (e *Engine) parse(canonical []byte) (enrichment.Result, *domain.ValidationError) {
	var instance any
	if err := json.Unmarshal(canonical, &instance); err != nil {
		return enrichment.Result{}, &domain.ValidationError{Reason: err.Error()}
	}
	if err := e.schema.Validate(instance); err != nil {
		return enrichment.Result{}, &domain.ValidationError{Reason: err.Error()}
	}

	var out modelOutput
	if err := json.Unmarshal(canonical, &out); err != nil {
		return enrichment.Result{}, &domain.ValidationError{Reason: err.Error()}
	}
	r := enrichment.Result{
		Summary:         out.Summary,
		Topics:          out.Topics,
		Sentiment:       out.Sentiment,
		KeyEntities:     out.KeyEntities,
		SuggestedTags:   out.SuggestedTags,
		ComplexityScore: out.ComplexityScore,
	}
	if err := r.Validate(); err != nil {
		return enrichment.Result{}, &domain.ValidationError{Reason: err.Error()}
	}
	return r, nil
}
