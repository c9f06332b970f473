package product

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"lending-backend/internal/domain/product"
)

type Usecase struct{ repo product.Repository }

func NewUsecase(r product.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) List(ctx context.Context) ([]product.Product, error) {
	out, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []product.Product{}
	}
	return out, nil
}

func (u *Usecase) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, product.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
