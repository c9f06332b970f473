package loan

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/payment"
	"lending-backend/internal/domain/user"
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, payments payment.Repository) *Usecase {
	return &Usecase{loans: loans, payments: payments, now: time.Now}
}

// ListMine returns the caller's loans newest first, each with what has been
// paid so far and the next installment due date.
func (u *Usecase) ListMine(ctx context.Context, caller user.Identity) ([]Summary, error) {
	loans, err := u.loans.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(loans))
	for i := range loans {
		ids[i] = loans[i].ID
	}
	paid, err := u.payments.SumByLoans(ctx, ids)
	if err != nil {
		return nil, err
	}
	return Summarize(loans, paid, u.now()), nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]loan.Listing, error) {
	out, err := u.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []loan.Listing{}
	}
	return out, nil
}

// Summarize pairs loans with their paid totals. Closed loans carry no due date.
func Summarize(loans []loan.Loan, paid map[string]decimal.Decimal, now time.Time) []Summary {
	out := make([]Summary, 0, len(loans))
	for _, l := range loans {
		p := paid[l.ID]
		s := Summary{Loan: l, PaidAmount: p}
		if l.State == loan.StateActive && l.OutstandingAmount.IsPositive() {
			due := l.NextDueDate(p)
			s.NextDueDate = &due
			s.Overdue = l.IsOverdue(p, now)
		}
		out = append(out, s)
	}
	return out
}
