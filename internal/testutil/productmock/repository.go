package productmock

import (
	"context"

	domain "lending-backend/internal/domain/product"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn  func(ctx context.Context, p *domain.Product) error
	GetByIDFn func(ctx context.Context, id string) (*domain.Product, error)
	ListFn    func(ctx context.Context) ([]domain.Product, error)
}

func (m *Repo) Create(ctx context.Context, p *domain.Product) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context) ([]domain.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
