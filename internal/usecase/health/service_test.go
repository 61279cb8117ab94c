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

type mockRepositoryChecker struct {
	err error
}

func (m *mockRepositoryChecker) HealthCheck(_ context.Context) error { return m.err }

// --- Tests ---

func TestCheck(t *testing.T) {
	down := errors.New("down")
	tests := []struct {
		name       string
		dbErr      error
		repo       RepositoryChecker
		wantStatus Status
		wantDB     CheckResult
		wantRepo   CheckResult // "" means absent
	}{
		{"all healthy", nil, &mockRepositoryChecker{}, Healthy, CheckOK, CheckOK},
		{"repository down", nil, &mockRepositoryChecker{err: down}, Degraded, CheckOK, CheckError},
		{"database down", down, &mockRepositoryChecker{}, Unhealthy, CheckError, CheckOK},
		{"both down", down, &mockRepositoryChecker{err: down}, Unhealthy, CheckError, CheckError},
		{"no repository", nil, nil, Healthy, CheckOK, ""},
		{"no repository, database down", down, nil, Unhealthy, CheckError, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(&mockDBPinger{err: tt.dbErr}, tt.repo).Check(context.Background())

			if r.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", r.Status, tt.wantStatus)
			}
			if r.Checks[ComponentDatabase] != tt.wantDB {
				t.Errorf("database = %q, want %q", r.Checks[ComponentDatabase], tt.wantDB)
			}
			got, ok := r.Checks[ComponentRepository]
			if tt.wantRepo == "" {
				if ok {
					t.Error("repository check should be absent")
				}
				return
			}
			if got != tt.wantRepo {
				t.Errorf("repository = %q, want %q", got, tt.wantRepo)
			}
		})
	}
}
