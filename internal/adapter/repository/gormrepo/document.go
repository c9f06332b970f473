package gormrepo

import (
	"context"

	"gorm.io/gorm"

	docDomain "lending-backend/internal/domain/document"
)

type DocumentRepository struct{ db *gorm.DB }

func NewDocumentRepository(db *gorm.DB) *DocumentRepository { return &DocumentRepository{db: db} }

func (r *DocumentRepository) Create(ctx context.Context, d *docDomain.Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*docDomain.Document, error) {
	var out docDomain.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DocumentRepository) ListByUser(ctx context.Context, userID string, limit int) ([]docDomain.Document, error) {
	var out []docDomain.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(newestFirst("documents", "uploaded_at"), limitIfPositive(limit)).
		Find(&out).Error
	return out, err
}

func (r *DocumentRepository) ListAll(ctx context.Context) ([]docDomain.Listing, error) {
	out := make([]docDomain.Listing, 0)
	err := r.db.WithContext(ctx).
		Model(&docDomain.Document{}).
		Joins("JOIN users ON users.id = documents.user_id").
		Select("documents.*, users.email AS user_email").
		Scopes(newestFirst("documents", "uploaded_at")).
		Scan(&out).Error
	return out, err
}

func (r *DocumentRepository) ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error) {
	out := make(map[string]struct{}, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	var found []string
	err := r.db.WithContext(ctx).
		Model(&docDomain.Document{}).
		Where("file_key IN ?", keys).
		Pluck("file_key", &found).Error
	if err != nil {
		return nil, err
	}
	for _, k := range found {
		out[k] = struct{}{}
	}
	return out, nil
}
