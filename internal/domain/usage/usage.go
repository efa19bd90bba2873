package usage

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// ParsePeriod maps a query value to a Period. Empty means day.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, true
	case PeriodMonth:
		return PeriodMonth, true
	case PeriodTotal:
		return PeriodTotal, true
	default:
		return "", false
	}
}

// Budget is a token budget snapshot. A zero limit means unlimited.
type Budget struct {
	TokensLimit     int64
	TokensRemaining int64
	IsExhausted     bool
	ResetsAt        int64 // unix millis, 0 when the period has no reset
}

// Report is a model token usage report for a time period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	provider    string
	tokensUsed  int64
	budget      Budget
}

// NewReport creates a usage report.
func NewReport(period Period, start, end int64, provider string, tokensUsed int64, b Budget) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		provider:    provider,
		tokensUsed:  tokensUsed,
		budget:      b,
	}
}

// Period returns the aggregation granularity.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis).
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis).
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Provider returns the model provider the budget applies to.
func (r *Report) Provider() string { return r.provider }

// TokensUsed returns tokens consumed in the period.
func (r *Report) TokensUsed() int64 { return r.tokensUsed }

// Budget returns the budget snapshot.
func (r *Report) Budget() Budget { return r.budget }
