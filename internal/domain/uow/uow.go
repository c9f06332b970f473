package uow

import (
	"context"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/payment"
	"lending-backend/internal/domain/product"
)

// Repos are bound to a single transaction for the duration of fn.
type Repos struct {
	Applications application.Repository
	Loans        loan.Repository
	Products     product.Repository
	Payments     payment.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
