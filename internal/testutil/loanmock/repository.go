package loanmock

import (
	"context"

	"github.com/shopspring/decimal"

	domain "lending-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Getters without a func return context.Canceled; writers succeed.
type Repo struct {
	CreateFn             func(ctx context.Context, l *domain.Loan) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.Loan, error)
	GetByIDForUpdateFn   func(ctx context.Context, id string) (*domain.Loan, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID string) (*domain.Loan, error)
	SaveFn               func(ctx context.Context, l *domain.Loan) error
	ListByUserFn         func(ctx context.Context, userID string) ([]domain.Loan, error)
	ListAllFn            func(ctx context.Context) ([]domain.Listing, error)
	ListActiveFn         func(ctx context.Context) ([]domain.Loan, error)
	CountActiveFn        func(ctx context.Context) (int64, error)
	SumOriginalFn        func(ctx context.Context) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Loan, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Loan, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Listing, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListActive(ctx context.Context) ([]domain.Loan, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx)
	}
	return nil, nil
}

func (m *Repo) CountActive(ctx context.Context) (int64, error) {
	if m.CountActiveFn != nil {
		return m.CountActiveFn(ctx)
	}
	return 0, nil
}

func (m *Repo) SumOriginal(ctx context.Context) (decimal.Decimal, error) {
	if m.SumOriginalFn != nil {
		return m.SumOriginalFn(ctx)
	}
	return decimal.Zero, nil
}
