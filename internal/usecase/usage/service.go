package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/notekeep/internal/domain/usage"
)

// Service handles usage reporting.
type Service struct {
	br  BudgetReader
	now func() time.Time
}

// New creates a Service. br can be nil (unlimited mode).
func New(br BudgetReader) *Service {
	return &Service{br: br, now: time.Now}
}

// WithClock overrides the time source for period bounds.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// GetReport builds a usage report for the given period.
// The total period has no bounds and reports the monthly budget.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	now := s.now().UTC()
	var start, end int64
	var limit, used, remaining int64
	var provider string

	if s.br != nil {
		provider = s.br.Provider()
	}

	switch period {
	case domusage.PeriodDay:
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = dayStart.UnixMilli()
		end = dayStart.Add(24 * time.Hour).UnixMilli()
		if s.br != nil {
			limit, used, remaining = s.br.DailyLimit(), s.br.DailyUsed(), s.br.RemainingDaily()
		}
	case domusage.PeriodMonth:
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = monthStart.UnixMilli()
		end = monthStart.AddDate(0, 1, 0).UnixMilli()
		if s.br != nil {
			limit, used, remaining = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.RemainingMonthly()
		}
	default:
		if s.br != nil {
			limit, used, remaining = s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.RemainingMonthly()
		}
	}

	if limit == 0 {
		remaining = 0
	}

	b := domusage.Budget{
		TokensLimit:     limit,
		TokensRemaining: remaining,
		IsExhausted:     limit > 0 && remaining <= 0,
		ResetsAt:        end,
	}
	return domusage.NewReport(period, start, end, provider, used, b)
}
