// Package gemini adapts the Google Gen AI SDK to domain.TextGenerator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/metrics"
)

const provider = "gemini"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

var (
	_ domain.TextGenerator = (*Generator)(nil)
	_ domain.HealthChecker = (*Generator)(nil)
)

// Models is the subset of genai.Models the generator calls.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Generator calls the Gemini API.
type Generator struct {
	models Models
	model  string
	logger *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides DefaultModel.
func WithModel(model string) Option {
	return func(g *Generator) {
		if model != "" {
			g.model = model
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// New creates a generator backed by the Gemini developer API.
func New(ctx context.Context, apiKey string, opts ...Option) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return NewWithModels(client.Models, opts...), nil
}

// NewWithModels creates a generator over an existing models client.
func NewWithModels(models Models, opts ...Option) *Generator {
	g := &Generator{
		models: models,
		model:  DefaultModel,
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Name returns the model identifier.
func (g *Generator) Name() string { return g.model }

// Generate sends a single-turn prompt.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		TopP:            genai.Ptr(req.TopP),
		MaxOutputTokens: int32(req.MaxOutputTokens), //nolint:gosec // bounded by config
	}
	if req.TopK > 0 {
		config.TopK = genai.Ptr(float32(req.TopK))
	}
	if req.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), config)
	duration := time.Since(start)

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(provider, g.model, "error").Inc()
		metrics.ModelErrorsTotal.WithLabelValues(provider, g.model, "api_error").Inc()
		return domain.GenerationResult{}, parseAPIError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		metrics.ModelRequestsTotal.WithLabelValues(provider, g.model, "error").Inc()
		metrics.ModelErrorsTotal.WithLabelValues(provider, g.model, "empty_response").Inc()
		return domain.GenerationResult{}, fmt.Errorf("gemini returned no candidates: %w", domain.ErrEnrichmentTransport)
	}

	metrics.ModelRequestsTotal.WithLabelValues(provider, g.model, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(provider, g.model).Observe(duration.Seconds())

	var out domain.GenerationResult
	out.Text = resp.Text()
	if resp.UsageMetadata != nil {
		out.PromptTokens = int(resp.UsageMetadata.PromptTokenCount)
		out.TotalTokens = int(resp.UsageMetadata.TotalTokenCount)
		metrics.ModelTokensTotal.WithLabelValues(provider, g.model, "prompt").Add(float64(out.PromptTokens))
		metrics.ModelTokensTotal.WithLabelValues(provider, g.model, "total").Add(float64(out.TotalTokens))
	}

	g.logger.Debug("Gemini generation finished",
		zap.String("model", g.model),
		zap.Int("total_tokens", out.TotalTokens),
		zap.Duration("duration", duration),
	)
	return out, nil
}

// HealthCheck fetches the configured model's metadata.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.models.Get(ctx, g.model, nil); err != nil {
		return fmt.Errorf("get model %s: %w", g.model, err)
	}
	return nil
}

func parseAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("gemini API error %d %s: %s: %w",
			apiErr.Code, apiErr.Status, apiErr.Message, domain.ErrEnrichmentTransport)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("gemini request: %w: %w", domain.ErrEnrichmentTransport, err)
	}
	return fmt.Errorf("gemini request failed: %w: %w", domain.ErrEnrichmentTransport, err)
}
