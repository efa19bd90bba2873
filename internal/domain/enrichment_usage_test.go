package domain

import (
	"context"
	"testing"
)

func TestEnrichmentUsage_Context(t *testing.T) {
	ctx, u := NewContextWithUsage(context.Background())
	if UsageFromContext(ctx) != u {
		t.Fatal("expected same collector from context")
	}

	u.AddAttempt(10, 25)
	u.AddAttempt(12, 30)

	if u.Attempts() != 2 {
		t.Errorf("expected 2 attempts, got %d", u.Attempts())
	}
	if u.PromptTokens() != 22 {
		t.Errorf("expected 22 prompt tokens, got %d", u.PromptTokens())
	}
	if u.TotalTokens() != 55 {
		t.Errorf("expected 55 total tokens, got %d", u.TotalTokens())
	}
}

func TestEnrichmentUsage_NilSafe(t *testing.T) {
	u := UsageFromContext(context.Background())
	if u != nil {
		t.Fatal("expected nil collector")
	}
	u.AddAttempt(1, 1)
	if u.TotalTokens() != 0 || u.Attempts() != 0 {
		t.Error("nil collector must report zero")
	}
}
