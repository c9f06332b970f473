package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id string) (*Loan, error)
	// GetByIDForUpdate locks the row for the rest of the transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Loan, error)
	GetByApplicationID(ctx context.Context, applicationID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error
	ListByUser(ctx context.Context, userID string) ([]Loan, error)
	ListAll(ctx context.Context) ([]Listing, error)
	ListActive(ctx context.Context) ([]Loan, error)
	CountActive(ctx context.Context) (int64, error)
	SumOriginal(ctx context.Context) (decimal.Decimal, error)
}
