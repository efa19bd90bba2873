package enrichment

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/metrics"
)

var _ domain.TextGenerator = (*InstrumentedModel)(nil)

// BudgetChecker is the local interface for budget enforcement.
type BudgetChecker interface {
	Check(ctx context.Context) error
	Record(tokens int64)
	RemainingDaily() int64
	RemainingMonthly() int64
}

// InstrumentedModel wraps a TextGenerator with budget enforcement and logging.
// Transport metrics are recorded by the provider adapters; this layer owns budget metrics only.
type InstrumentedModel struct {
	inner    domain.TextGenerator
	provider string
	budget   BudgetChecker
	logger   *zap.Logger
}

// NewInstrumentedModel wraps a model with budget and observability. budget can be nil.
func NewInstrumentedModel(
	inner domain.TextGenerator, provider string,
	budget BudgetChecker, logger *zap.Logger,
) *InstrumentedModel {
	return &InstrumentedModel{
		inner:    inner,
		provider: provider,
		budget:   budget,
		logger:   logger,
	}
}

// Name returns the wrapped model identifier.
func (m *InstrumentedModel) Name() string { return m.inner.Name() }

// HealthCheck delegates to the wrapped model when it supports one.
func (m *InstrumentedModel) HealthCheck(ctx context.Context) error {
	if hc, ok := m.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // pass-through
	}
	return nil
}

// Generate checks the budget, delegates to the inner model, and records usage.
func (m *InstrumentedModel) Generate(
	ctx context.Context, req domain.GenerationRequest,
) (domain.GenerationResult, error) {
	if m.budget != nil {
		if err := m.budget.Check(ctx); err != nil {
			m.logger.Error("Budget exceeded",
				zap.String("provider", m.provider),
				zap.String("model", m.inner.Name()),
				zap.Error(err),
			)
			return domain.GenerationResult{}, fmt.Errorf("budget check: %w", err)
		}
	}

	start := time.Now()

	result, err := m.inner.Generate(ctx, req)

	duration := time.Since(start)

	if err != nil {
		m.logger.Error("Generation request failed",
			zap.String("provider", m.provider),
			zap.String("model", m.inner.Name()),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.GenerationResult{}, fmt.Errorf("generate: %w", err)
	}

	if m.budget != nil && result.TotalTokens > 0 {
		m.budget.Record(int64(result.TotalTokens))
		remaining := metrics.ModelBudgetTokensRemaining
		remaining.WithLabelValues(m.provider, "daily").Set(float64(m.budget.RemainingDaily()))
		remaining.WithLabelValues(m.provider, "monthly").Set(float64(m.budget.RemainingMonthly()))
	}

	m.logger.Debug("Generation request completed",
		zap.String("provider", m.provider),
		zap.String("model", m.inner.Name()),
		zap.Duration("duration", duration),
		zap.Int("reply_bytes", len(result.Text)),
		zap.Int("prompt_tokens", result.PromptTokens),
		zap.Int("total_tokens", result.TotalTokens),
	)

	return result, nil
}
