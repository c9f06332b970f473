package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Application, error)
	Save(ctx context.Context, a *Application) error
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	// Search returns one page and the total row count under the same filter.
	Search(ctx context.Context, f Filter) ([]Listing, int64, error)
	CountByStatus(ctx context.Context, s Status) (int64, error)
}
