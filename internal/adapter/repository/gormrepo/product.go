package gormrepo

import (
	"context"

	"gorm.io/gorm"

	productDomain "lending-backend/internal/domain/product"
)

type ProductRepository struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) *ProductRepository { return &ProductRepository{db: db} }

func (r *ProductRepository) Create(ctx context.Context, p *productDomain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*productDomain.Product, error) {
	var out productDomain.Product
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProductRepository) List(ctx context.Context) ([]productDomain.Product, error) {
	var out []productDomain.Product
	err := r.db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Find(&out).Error
	return out, err
}
