package applicationmock

import (
	"context"

	domain "lending-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Getters without a func return context.Canceled; writers succeed.
type Repo struct {
	CreateFn           func(ctx context.Context, a *domain.Application) error
	GetByIDFn          func(ctx context.Context, id string) (*domain.Application, error)
	GetByIDForUpdateFn func(ctx context.Context, id string) (*domain.Application, error)
	SaveFn             func(ctx context.Context, a *domain.Application) error
	ListByUserFn       func(ctx context.Context, userID string) ([]domain.Application, error)
	SearchFn           func(ctx context.Context, f domain.Filter) ([]domain.Listing, int64, error)
	CountByStatusFn    func(ctx context.Context, s domain.Status) (int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id string) (*domain.Application, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string) ([]domain.Application, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *Repo) Search(ctx context.Context, f domain.Filter) ([]domain.Listing, int64, error) {
	if m.SearchFn != nil {
		return m.SearchFn(ctx, f)
	}
	return nil, 0, nil
}

func (m *Repo) CountByStatus(ctx context.Context, s domain.Status) (int64, error) {
	if m.CountByStatusFn != nil {
		return m.CountByStatusFn(ctx, s)
	}
	return 0, nil
}
