package document

import "context"

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id string) (*Document, error)
	// ListByUser returns newest first; limit <= 0 returns everything.
	ListByUser(ctx context.Context, userID string, limit int) ([]Document, error)
	ListAll(ctx context.Context) ([]Listing, error)
	// ExistingKeys returns the subset of keys referenced by a row.
	ExistingKeys(ctx context.Context, keys []string) (map[string]struct{}, error)
}
