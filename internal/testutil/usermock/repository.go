package usermock

import (
	"context"
	"time"

	domain "lending-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn         func(ctx context.Context, u *domain.User) error
	GetByIDFn        func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn     func(ctx context.Context, email string) (*domain.User, error)
	TouchLastLoginFn func(ctx context.Context, id string, at time.Time) error
	HasAdminFn       func(ctx context.Context) (bool, error)
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, context.Canceled
}

func (m *Repo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	if m.TouchLastLoginFn != nil {
		return m.TouchLastLoginFn(ctx, id, at)
	}
	return nil
}

func (m *Repo) HasAdmin(ctx context.Context) (bool, error) {
	if m.HasAdminFn != nil {
		return m.HasAdminFn(ctx)
	}
	return false, nil
}
