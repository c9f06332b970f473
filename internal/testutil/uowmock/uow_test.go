package uowmock

import (
	"context"
	"errors"
	"testing"

	"lending-backend/internal/domain/uow"
	"lending-backend/internal/testutil/applicationmock"
	"lending-backend/internal/testutil/loanmock"
)

func TestPassthrough(t *testing.T) {
	loans := &loanmock.Repo{}
	apps := &applicationmock.Repo{}
	boom := errors.New("boom")

	tests := []struct {
		name          string
		body          error
		wantCommitted int
		wantRolled    int
	}{
		{"commit", nil, 1, 0},
		{"rollback", boom, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Passthrough(uow.Repos{Loans: loans, Applications: apps})
			err := m.WithinTx(context.Background(), func(r uow.Repos) error {
				if r.Loans != loans || r.Applications != apps {
					t.Fatalf("repos not forwarded")
				}
				return tt.body
			})
			if !errors.Is(err, tt.body) {
				t.Fatalf("err = %v, want %v", err, tt.body)
			}
			if m.Calls != 1 || m.Committed != tt.wantCommitted || m.RolledBack != tt.wantRolled {
				t.Fatalf("calls=%d committed=%d rolled=%d", m.Calls, m.Committed, m.RolledBack)
			}
		})
	}
}

func TestFailing_NeverRunsBody(t *testing.T) {
	down := errors.New("db down")
	m := Failing(down)
	err := m.WithinTx(context.Background(), func(uow.Repos) error {
		t.Fatalf("body must not run")
		return nil
	})
	if !errors.Is(err, down) || m.RolledBack != 1 {
		t.Fatalf("err=%v rolled=%d", err, m.RolledBack)
	}
}

func TestUnconfigured(t *testing.T) {
	m := New()
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, errNoTx) {
		t.Fatalf("want errNoTx, got %v", err)
	}
	if m.Calls != 1 {
		t.Fatalf("Calls = %d", m.Calls)
	}
}
