package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, p *Payment) error
	ListByLoan(ctx context.Context, loanID string) ([]Payment, error)
	ListRecentByUser(ctx context.Context, userID string, limit int) ([]Payment, error)
	// SumByLoans returns the total paid per loan id; loans without payments are absent.
	SumByLoans(ctx context.Context, loanIDs []string) (map[string]decimal.Decimal, error)
}
