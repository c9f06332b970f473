package user

import (
	"context"
	"time"
)

type Repository interface {
	// Create inserts u; a duplicate email surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	HasAdmin(ctx context.Context) (bool, error)
}
