package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"lending-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposOn(tx))
	})
}

func reposOn(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		Loans:        &LoanRepository{db: tx},
		Products:     &ProductRepository{db: tx},
		Payments:     &PaymentRepository{db: tx},
	}
}
