package usage

import (
	"context"
	"testing"
	"time"

	domusage "github.com/kailas-cloud/notekeep/internal/domain/usage"
)

// --- Mock ---

type mockBudgetReader struct {
	dailyLimit       int64
	monthlyLimit     int64
	dailyUsed        int64
	monthlyUsed      int64
	remainingDaily   int64
	remainingMonthly int64
}

func (m *mockBudgetReader) Provider() string        { return "gemini" }
func (m *mockBudgetReader) DailyLimit() int64       { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64     { return m.monthlyLimit }
func (m *mockBudgetReader) DailyUsed() int64        { return m.dailyUsed }
func (m *mockBudgetReader) MonthlyUsed() int64      { return m.monthlyUsed }
func (m *mockBudgetReader) RemainingDaily() int64   { return m.remainingDaily }
func (m *mockBudgetReader) RemainingMonthly() int64 { return m.remainingMonthly }

var fixedNow = time.Date(2026, 2, 14, 15, 30, 0, 0, time.UTC)

func newService(br BudgetReader) *Service {
	return New(br).WithClock(func() time.Time { return fixedNow })
}

// --- Tests ---

func TestGetReport_DailyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:       10000,
		dailyUsed:        3000,
		remainingDaily:   7000,
		monthlyLimit:     100000,
		monthlyUsed:      50000,
		remainingMonthly: 50000,
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodDay)

	if r.Period() != domusage.PeriodDay {
		t.Errorf("expected period %q, got %q", domusage.PeriodDay, r.Period())
	}
	dayStart := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != dayStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", dayStart.UnixMilli(), r.PeriodStart())
	}
	if r.PeriodEnd() != dayStart.Add(24*time.Hour).UnixMilli() {
		t.Errorf("unexpected period end %d", r.PeriodEnd())
	}
	if r.Provider() != "gemini" {
		t.Errorf("unexpected provider %q", r.Provider())
	}
	if r.TokensUsed() != 3000 {
		t.Errorf("expected tokens 3000, got %d", r.TokensUsed())
	}

	b := r.Budget()
	if b.TokensLimit != 10000 || b.TokensRemaining != 7000 || b.IsExhausted {
		t.Errorf("unexpected budget %+v", b)
	}
	if b.ResetsAt != r.PeriodEnd() {
		t.Errorf("expected resets_at at period end, got %d", b.ResetsAt)
	}
}

func TestGetReport_MonthlyPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		monthlyUsed:      80000,
		remainingMonthly: 20000,
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodMonth)

	monthStart := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodStart() != monthStart.UnixMilli() {
		t.Errorf("expected period start %d, got %d", monthStart.UnixMilli(), r.PeriodStart())
	}
	monthEnd := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if r.PeriodEnd() != monthEnd.UnixMilli() {
		t.Errorf("expected period end %d, got %d", monthEnd.UnixMilli(), r.PeriodEnd())
	}
	if r.Budget().TokensLimit != 100000 || r.TokensUsed() != 80000 {
		t.Errorf("unexpected report %+v used=%d", r.Budget(), r.TokensUsed())
	}
}

func TestGetReport_TotalPeriod(t *testing.T) {
	br := &mockBudgetReader{
		monthlyLimit:     100000,
		monthlyUsed:      100000,
		remainingMonthly: 0,
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodTotal)

	if r.PeriodStart() != 0 || r.PeriodEnd() != 0 {
		t.Errorf("expected no bounds for total, got %d..%d", r.PeriodStart(), r.PeriodEnd())
	}
	if !r.Budget().IsExhausted {
		t.Error("budget should be exhausted")
	}
	if r.Budget().ResetsAt != 0 {
		t.Errorf("expected no reset for total, got %d", r.Budget().ResetsAt)
	}
}

func TestGetReport_NilBudgetReader(t *testing.T) {
	r := newService(nil).GetReport(context.Background(), domusage.PeriodDay)

	b := r.Budget()
	if b.TokensLimit != 0 || b.TokensRemaining != 0 || b.IsExhausted {
		t.Errorf("unexpected budget for unlimited mode %+v", b)
	}
	if r.Provider() != "" {
		t.Errorf("expected empty provider, got %q", r.Provider())
	}
}

func TestGetReport_UnlimitedHidesSentinel(t *testing.T) {
	br := &mockBudgetReader{remainingDaily: -1, dailyUsed: 42}
	r := newService(br).GetReport(context.Background(), domusage.PeriodDay)

	if r.Budget().TokensRemaining != 0 {
		t.Errorf("expected 0 remaining for unlimited budget, got %d", r.Budget().TokensRemaining)
	}
	if r.TokensUsed() != 42 {
		t.Errorf("expected 42 used, got %d", r.TokensUsed())
	}
}

func TestGetReport_Exhausted(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit:     5000,
		dailyUsed:      5000,
		remainingDaily: 0,
	}
	r := newService(br).GetReport(context.Background(), domusage.PeriodDay)

	if !r.Budget().IsExhausted {
		t.Error("budget should be exhausted when remaining is 0")
	}
}
