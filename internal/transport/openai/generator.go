package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/metrics"
)

var (
	_ domain.TextGenerator = (*Generator)(nil)
	_ domain.HealthChecker = (*Generator)(nil)
)

// Generator is a text generation provider using the OpenAI-compatible chat completions API.
type Generator struct {
	client   *openai.Client
	model    string
	user     string
	provider string
	logger   *zap.Logger
}

// Config holds the chat provider settings.
type Config struct {
	APIKey   string
	BaseURL  string // empty uses the OpenAI default
	Model    string
	User     string
	Provider string
	Logger   *zap.Logger
}

// DefaultModel is used when Config.Model is empty.
const DefaultModel = "gpt-4o-mini"

// NewGenerator creates an OpenAI-compatible text generator.
func NewGenerator(cfg *Config) *Generator {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	provider := cfg.Provider
	if provider == "" {
		provider = "openai"
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		client:   openai.NewClientWithConfig(clientCfg),
		model:    model,
		user:     cfg.User,
		provider: provider,
		logger:   logger,
	}
}

// Name returns the model identifier.
func (g *Generator) Name() string { return g.model }

// Generate implements domain.TextGenerator with transport-level metrics.
// TopK has no chat completions equivalent and is not sent.
func (g *Generator) Generate(ctx context.Context, req domain.GenerationRequest) (domain.GenerationResult, error) {
	chatReq := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		TopP:        req.TopP,
		MaxTokens:   req.MaxOutputTokens,
		User:        g.user,
	}
	if req.JSONResponse {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)

	duration := time.Since(start)

	if err != nil {
		metrics.ModelRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		metrics.ModelErrorsTotal.WithLabelValues(g.provider, g.model, "api_error").Inc()
		return domain.GenerationResult{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.ModelRequestsTotal.WithLabelValues(g.provider, g.model, "error").Inc()
		metrics.ModelErrorsTotal.WithLabelValues(g.provider, g.model, "empty_response").Inc()
		return domain.GenerationResult{}, fmt.Errorf("chat completion returned no choices: %w", domain.ErrEnrichmentTransport)
	}

	metrics.ModelRequestsTotal.WithLabelValues(g.provider, g.model, "success").Inc()
	metrics.ModelRequestDuration.WithLabelValues(g.provider, g.model).Observe(duration.Seconds())

	promptTokens := resp.Usage.PromptTokens
	totalTokens := resp.Usage.TotalTokens
	if totalTokens > 0 {
		metrics.ModelTokensTotal.WithLabelValues(g.provider, g.model, "prompt").Add(float64(promptTokens))
		metrics.ModelTokensTotal.WithLabelValues(g.provider, g.model, "total").Add(float64(totalTokens))
	}

	g.logger.Debug("Chat completion finished",
		zap.String("model", g.model),
		zap.String("finish_reason", string(resp.Choices[0].FinishReason)),
		zap.Duration("duration", duration),
	)

	return domain.GenerationResult{
		Text:         resp.Choices[0].Message.Content,
		PromptTokens: promptTokens,
		TotalTokens:  totalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels.
func (g *Generator) HealthCheck(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a readable message from the API response.
// Every error wraps domain.ErrEnrichmentTransport so the engine aborts without retrying.
func parseAPIError(err error) error {
	wrap := domain.ErrEnrichmentTransport

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("chat API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("chat API error %d: %w", reqErr.HTTPStatusCode, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("chat request: %w: %w", wrap, err)
	}

	return fmt.Errorf("chat request failed: %w", wrap)
}

// extractDetail reads the "detail" field some OpenAI-compatible providers return.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
