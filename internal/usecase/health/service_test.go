package health

import (
	"context"
	"errors"
	"testing"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockModelChecker struct {
	err error
}

func (m *mockModelChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	down := errors.New("down")

	tests := []struct {
		name       string
		db         DBPinger
		model      ModelChecker
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "all healthy",
			db:         &mockDBPinger{},
			model:      &mockModelChecker{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{ComponentDatabase: CheckOK, ComponentModel: CheckOK},
		},
		{
			name:       "database down",
			db:         &mockDBPinger{err: down},
			model:      &mockModelChecker{},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{ComponentDatabase: CheckError, ComponentModel: CheckOK},
		},
		{
			name:       "model down",
			db:         &mockDBPinger{},
			model:      &mockModelChecker{err: down},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{ComponentDatabase: CheckOK, ComponentModel: CheckError},
		},
		{
			name:       "both down",
			db:         &mockDBPinger{err: down},
			model:      &mockModelChecker{err: down},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{ComponentDatabase: CheckError, ComponentModel: CheckError},
		},
		{
			name:       "only model configured and down",
			model:      &mockModelChecker{err: down},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{ComponentModel: CheckError},
		},
		{
			name:       "nothing configured",
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(tt.db, tt.model).Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("expected %q, got %q", tt.wantStatus, r.Status)
			}
			if len(r.Checks) != len(tt.wantChecks) {
				t.Fatalf("expected %d checks, got %v", len(tt.wantChecks), r.Checks)
			}
			for k, v := range tt.wantChecks {
				if r.Checks[k] != v {
					t.Errorf("expected %s %q, got %q", k, v, r.Checks[k])
				}
			}
		})
	}
}
