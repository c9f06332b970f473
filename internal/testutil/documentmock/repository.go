package documentmock

import (
	"context"

	domain "lending-backend/internal/domain/document"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, d *domain.Document) error
	GetByIDFn      func(ctx context.Context, id string) (*domain.Document, error)
	ListByUserFn   func(ctx context.Context, userID string, limit int) ([]domain.Document, error)
	ListAllFn      func(ctx context.Context) ([]domain.Listing, error)
	ExistingKeysFn func(ctx context.Context, keys []string) (map[string]struct{}, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Document, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Document, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Listing, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	if m.ExistingKeysFn != nil {
		return m.ExistingKeysFn(ctx, keys)
	}
	return map[string]struct{}{}, nil
}
