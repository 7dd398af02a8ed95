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

type mockCatalog struct {
	loaded bool
}

func (m *mockCatalog) Loaded() bool { return m.loaded }

// --- Tests ---

func TestCheck(t *testing.T) {
	tests := []struct {
		name       string
		catalog    bool
		db         DBPinger
		wantStatus Status
		wantChecks map[string]CheckResult
	}{
		{
			name:       "all healthy",
			catalog:    true,
			db:         &mockDBPinger{},
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"catalog": CheckOK, "database": CheckOK},
		},
		{
			name:       "file sources only",
			catalog:    true,
			wantStatus: Healthy,
			wantChecks: map[string]CheckResult{"catalog": CheckOK},
		},
		{
			name:       "database down",
			catalog:    true,
			db:         &mockDBPinger{err: errors.New("conn refused")},
			wantStatus: Degraded,
			wantChecks: map[string]CheckResult{"catalog": CheckOK, "database": CheckError},
		},
		{
			name:       "catalog not loaded",
			catalog:    false,
			db:         &mockDBPinger{},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{"catalog": CheckError, "database": CheckOK},
		},
		{
			name:       "everything down",
			catalog:    false,
			db:         &mockDBPinger{err: errors.New("timeout")},
			wantStatus: Unhealthy,
			wantChecks: map[string]CheckResult{"catalog": CheckError, "database": CheckError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := New(&mockCatalog{loaded: tt.catalog}, tt.db)
			r := svc.Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if len(r.Checks) != len(tt.wantChecks) {
				t.Fatalf("checks = %v, want %v", r.Checks, tt.wantChecks)
			}
			for k, v := range tt.wantChecks {
				if r.Checks[k] != v {
					t.Errorf("check %s = %q, want %q", k, r.Checks[k], v)
				}
			}
		})
	}
}
