package gormrepo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/product"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/infrastructure/db"
	"lending-backend/pkg/id"
)

// openTestDB returns a migrated in-memory SQLite database with the same
// gorm settings production uses (TranslateError included).
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.OpenGorm("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return gdb
}

func mustUser(t *testing.T, gdb *gorm.DB, email string) *user.User {
	t.Helper()
	u := &user.User{ID: id.NewID32(), FirstName: "T", Email: email, PasswordHash: "x", Role: user.RoleCustomer}
	if err := NewUserRepository(gdb).Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustProduct(t *testing.T, gdb *gorm.DB) *product.Product {
	t.Helper()
	p := &product.Product{
		ID:              id.NewID32(),
		Name:            "Personal",
		MinAmount:       decimal.NewFromInt(100),
		MaxAmount:       decimal.NewFromInt(100000),
		BaseInterest:    decimal.NewFromInt(12),
		MinTenureMonths: 1,
		MaxTenureMonths: 60,
	}
	if err := NewProductRepository(gdb).Create(context.Background(), p); err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p
}

// mustApplication inserts with an explicit created_at so ordering is deterministic.
func mustApplication(t *testing.T, gdb *gorm.DB, u *user.User, p *product.Product, at time.Time) *application.Application {
	t.Helper()
	a := &application.Application{
		ID:              id.NewID32(),
		UserID:          u.ID,
		ProductID:       p.ID,
		RequestedAmount: decimal.NewFromInt(1000),
		RequestedTenure: 12,
		Status:          application.StatusSubmitted,
		CreatedAt:       at,
	}
	if err := NewApplicationRepository(gdb).Create(context.Background(), a); err != nil {
		t.Fatalf("create application: %v", err)
	}
	return a
}

func newLoan(a *application.Application) *loan.Loan {
	return &loan.Loan{
		ID:                id.NewID32(),
		ApplicationID:     a.ID,
		UserID:            a.UserID,
		ProductID:         a.ProductID,
		OriginalAmount:    a.RequestedAmount,
		OutstandingAmount: a.RequestedAmount,
		InterestRate:      decimal.NewFromInt(12),
		TenureMonths:      a.RequestedTenure,
		MonthlyEMI:        loan.MonthlyEMI(a.RequestedAmount, decimal.NewFromInt(12), a.RequestedTenure),
		State:             loan.StateActive,
		DisbursedAt:       time.Now().UTC(),
	}
}
