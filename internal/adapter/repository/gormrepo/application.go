package gormrepo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	appDomain "lending-backend/internal/domain/application"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id string) (*appDomain.Application, error) {
	return r.get(ctx, r.db, id)
}

func (r *ApplicationRepository) GetByIDForUpdate(ctx context.Context, id string) (*appDomain.Application, error) {
	return r.get(ctx, forUpdate(r.db), id)
}

func (r *ApplicationRepository) get(ctx context.Context, db *gorm.DB, id string) (*appDomain.Application, error) {
	var out appDomain.Application
	if err := db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ApplicationRepository) Save(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]appDomain.Application, error) {
	var out []appDomain.Application
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(newestFirst("loan_applications", "created_at")).
		Find(&out).Error
	return out, err
}

// applicationFilter is shared by the count and the page query so the two
// can never disagree.
func applicationFilter(f appDomain.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Joins("JOIN users ON users.id = loan_applications.user_id")
		if f.Status != "" {
			db = db.Where("loan_applications.status = ?", f.Status)
		}
		if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
			like := containsPattern(q)
			db = db.Where("(LOWER(users.email) LIKE ? ESCAPE '!' OR LOWER(loan_applications.id) LIKE ? ESCAPE '!')", like, like)
		}
		return db
	}
}

func (r *ApplicationRepository) Search(ctx context.Context, f appDomain.Filter) ([]appDomain.Listing, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Scopes(applicationFilter(f)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Scopes(applicationFilter(f), newestFirst("loan_applications", "created_at")).
		Select("loan_applications.*, users.email AS user_email")
	if f.Limit > 0 {
		q = q.Limit(f.Limit).Offset(f.Offset)
	}
	out := make([]appDomain.Listing, 0)
	if err := q.Scan(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *ApplicationRepository) CountByStatus(ctx context.Context, s appDomain.Status) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("status = ?", s).
		Count(&n).Error
	return n, err
}
