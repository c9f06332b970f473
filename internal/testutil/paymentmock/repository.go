package paymentmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "lending-backend/internal/domain/payment"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, p *domain.Payment) error
	ListByLoanFn       func(ctx context.Context, loanID string) ([]domain.Payment, error)
	ListRecentByUserFn func(ctx context.Context, userID string, limit int) ([]domain.Payment, error)
	SumByLoansFn       func(ctx context.Context, loanIDs []string) (map[string]decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) ListByLoan(ctx context.Context, loanID string) ([]domain.Payment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) ListRecentByUser(ctx context.Context, userID string, limit int) ([]domain.Payment, error) {
	if m.ListRecentByUserFn != nil {
		return m.ListRecentByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *Repo) SumByLoans(ctx context.Context, loanIDs []string) (map[string]decimal.Decimal, error) {
	if m.SumByLoansFn != nil {
		return m.SumByLoansFn(ctx, loanIDs)
	}
	return map[string]decimal.Decimal{}, nil
}
