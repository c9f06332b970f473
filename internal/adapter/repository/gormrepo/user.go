package gormrepo

import (
	"context"
	"time"

	"gorm.io/gorm"

	userDomain "lending-backend/internal/domain/user"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var out userDomain.User
	err := r.db.WithContext(ctx).
		Where("email = ?", userDomain.NormalizeEmail(email)).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("id = ?", id).
		Update("last_login_at", at.UTC())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) HasAdmin(ctx context.Context) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&userDomain.User{}).
		Where("role = ?", userDomain.RoleAdmin).
		Count(&n).Error
	return n > 0, err
}
