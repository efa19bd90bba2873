package domain

import (
	"context"
	"sync"
)

type enrichmentUsageKey struct{}

// EnrichmentUsage collects model token usage for a single HTTP request.
// The handler puts a pointer into the context before calling the service,
// the engine adds tokens per attempt, and the handler reads it for response headers.
type EnrichmentUsage struct {
	mu           sync.Mutex
	promptTokens int
	totalTokens  int
	attempts     int
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *EnrichmentUsage) {
	u := &EnrichmentUsage{}
	return context.WithValue(ctx, enrichmentUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *EnrichmentUsage {
	u, _ := ctx.Value(enrichmentUsageKey{}).(*EnrichmentUsage)
	return u
}

// AddAttempt records one model call and the tokens it consumed.
func (u *EnrichmentUsage) AddAttempt(promptTokens, totalTokens int) {
	if u == nil {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.attempts++
	u.promptTokens += promptTokens
	u.totalTokens += totalTokens
}

// TotalTokens returns tokens consumed across all attempts.
func (u *EnrichmentUsage) TotalTokens() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.totalTokens
}

// PromptTokens returns prompt tokens consumed across all attempts.
func (u *EnrichmentUsage) PromptTokens() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.promptTokens
}

// Attempts returns the number of model calls made.
func (u *EnrichmentUsage) Attempts() int {
	if u == nil {
		return 0
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.attempts
}
