package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/testutil/loanmock"
	"lending-backend/internal/testutil/paymentmock"
)

func TestListMine_SummarizesRepayment(t *testing.T) {
	disbursed := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	loans := &loanmock.Repo{ListByUserFn: func(_ context.Context, userID string) ([]loan.Loan, error) {
		if userID != "c1" {
			t.Fatalf("userID = %s", userID)
		}
		return []loan.Loan{
			{ID: "behind", State: loan.StateActive, OutstandingAmount: decimal.NewFromInt(900), MonthlyEMI: decimal.NewFromInt(100), DisbursedAt: disbursed},
			{ID: "closed", State: loan.StateClosed, OutstandingAmount: decimal.Zero, MonthlyEMI: decimal.NewFromInt(100), DisbursedAt: disbursed},
		}, nil
	}}
	payments := &paymentmock.Repo{SumByLoansFn: func(_ context.Context, ids []string) (map[string]decimal.Decimal, error) {
		if len(ids) != 2 {
			t.Fatalf("ids = %v", ids)
		}
		return map[string]decimal.Decimal{"behind": decimal.NewFromInt(100)}, nil
	}}

	uc := NewUsecase(loans, payments)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	out, err := uc.ListMine(context.Background(), user.Identity{ID: "c1"})
	if err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d", len(out))
	}
	behind := out[0]
	// one installment paid, so the second one fell due 2025-03-10
	if behind.NextDueDate == nil || !behind.NextDueDate.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("next due = %v", behind.NextDueDate)
	}
	if !behind.Overdue || !behind.PaidAmount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("behind summary: %+v", behind)
	}
	if out[1].NextDueDate != nil || out[1].Overdue {
		t.Fatalf("closed loan must have no due date: %+v", out[1])
	}
}

func TestListMine_StoreError(t *testing.T) {
	boom := errors.New("boom")
	uc := NewUsecase(&loanmock.Repo{ListByUserFn: func(context.Context, string) ([]loan.Loan, error) { return nil, boom }}, &paymentmock.Repo{})
	if _, err := uc.ListMine(context.Background(), user.Identity{ID: "c1"}); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestListAll_NeverNil(t *testing.T) {
	out, err := NewUsecase(&loanmock.Repo{}, &paymentmock.Repo{}).ListAll(context.Background())
	if err != nil || out == nil {
		t.Fatalf("got (%v, %v)", out, err)
	}
}
