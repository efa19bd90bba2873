package enrichment

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/notekeep/internal/domain"
	"github.com/kailas-cloud/notekeep/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.Register()
	os.Exit(m.Run())
}

type mockModel struct {
	result domain.GenerationResult
	err    error
	calls  int
}

func (m *mockModel) Name() string { return "mock-model" }

func (m *mockModel) Generate(_ context.Context, _ domain.GenerationRequest) (domain.GenerationResult, error) {
	m.calls++
	return m.result, m.err
}

type mockBudget struct {
	checkErr error
	recorded int64
}

func (b *mockBudget) Check(context.Context) error { return b.checkErr }
func (b *mockBudget) Record(tokens int64)         { b.recorded += tokens }
func (b *mockBudget) RemainingDaily() int64       { return 1000 - b.recorded }
func (b *mockBudget) RemainingMonthly() int64     { return 5000 - b.recorded }

func TestInstrumentedModel_Success(t *testing.T) {
	inner := &mockModel{result: domain.GenerationResult{Text: "{}", PromptTokens: 10, TotalTokens: 25}}
	budget := &mockBudget{}
	m := NewInstrumentedModel(inner, "instr-success", budget, zap.NewNop())

	res, err := m.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "{}" {
		t.Errorf("unexpected text %q", res.Text)
	}
	if budget.recorded != 25 {
		t.Errorf("expected 25 recorded tokens, got %d", budget.recorded)
	}
	if m.Name() != "mock-model" {
		t.Errorf("unexpected name %q", m.Name())
	}

	gauge := metrics.ModelBudgetTokensRemaining.WithLabelValues("instr-success", "daily")
	if v := testutil.ToFloat64(gauge); v != 975 {
		t.Errorf("expected daily remaining gauge 975, got %v", v)
	}
}

func TestInstrumentedModel_BudgetRejected(t *testing.T) {
	inner := &mockModel{}
	budget := &mockBudget{checkErr: domain.ErrEnrichmentQuotaExceeded}
	m := NewInstrumentedModel(inner, "test", budget, zap.NewNop())

	_, err := m.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	if !errors.Is(err, domain.ErrEnrichmentQuotaExceeded) {
		t.Fatalf("expected ErrEnrichmentQuotaExceeded, got %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("inner model must not be called, got %d calls", inner.calls)
	}
}

func TestInstrumentedModel_InnerError(t *testing.T) {
	inner := &mockModel{err: domain.ErrEnrichmentTransport}
	budget := &mockBudget{}
	m := NewInstrumentedModel(inner, "test", budget, zap.NewNop())

	_, err := m.Generate(context.Background(), domain.GenerationRequest{Prompt: "p"})
	if !errors.Is(err, domain.ErrEnrichmentTransport) {
		t.Fatalf("expected ErrEnrichmentTransport, got %v", err)
	}
	if budget.recorded != 0 {
		t.Errorf("failed call must not record tokens, got %d", budget.recorded)
	}
}

func TestInstrumentedModel_NilBudget(t *testing.T) {
	inner := &mockModel{result: domain.GenerationResult{Text: "x", TotalTokens: 5}}
	m := NewInstrumentedModel(inner, "test", nil, zap.NewNop())

	if _, err := m.Generate(context.Background(), domain.GenerationRequest{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInstrumentedModel_HealthCheckWithoutSupport(t *testing.T) {
	m := NewInstrumentedModel(&mockModel{}, "test", nil, zap.NewNop())
	if err := m.HealthCheck(context.Background()); err != nil {
		t.Fatalf("expected nil for model without health check, got %v", err)
	}
}
