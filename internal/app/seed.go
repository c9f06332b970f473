package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lending-backend/internal/domain/product"
	"lending-backend/internal/domain/user"
	"lending-backend/pkg/id"
)

type AdminSeed struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// SeedAdmin creates the first admin account. It does nothing, and reports
// created=false, when any admin already exists.
func SeedAdmin(ctx context.Context, users user.Repository, in AdminSeed, cost int) (created bool, err error) {
	has, err := users.HasAdmin(ctx)
	if err != nil {
		return false, fmt.Errorf("check admin: %w", err)
	}
	if has {
		log.Info("seed: admin already exists")
		return false, nil
	}

	email := user.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return false, errors.New("ADMIN_EMAIL and ADMIN_PASSWORD are required to seed an admin")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	first := strings.TrimSpace(in.FirstName)
	if first == "" {
		first = "Admin"
	}
	u := &user.User{
		ID:           id.NewID32(),
		FirstName:    first,
		Email:        email,
		PasswordHash: string(hash),
		Role:         user.RoleAdmin,
	}
	if last := strings.TrimSpace(in.LastName); last != "" {
		u.LastName = &last
	}
	if err := users.Create(ctx, u); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	log.WithFields(log.Fields{"user_id": u.ID, "email": u.Email}).Info("seed: admin created")
	return true, nil
}

// DefaultProducts is the catalog SeedProducts installs into an empty table.
func DefaultProducts() []product.Product {
	mk := func(name, desc string, minAmt, maxAmt, rate int64, minT, maxT int) product.Product {
		return product.Product{
			Name:            name,
			Description:     desc,
			MinAmount:       decimal.NewFromInt(minAmt),
			MaxAmount:       decimal.NewFromInt(maxAmt),
			BaseInterest:    decimal.NewFromInt(rate),
			MinTenureMonths: minT,
			MaxTenureMonths: maxT,
		}
	}
	return []product.Product{
		mk("Personal Loan", "Unsecured loan for personal expenses", 1000, 50000, 12, 6, 60),
		mk("Small Business Loan", "Working capital for small businesses", 5000, 250000, 10, 12, 84),
		mk("Education Loan", "Tuition and study costs", 2000, 100000, 8, 12, 120),
	}
}

// SeedProducts inserts DefaultProducts when the catalog is empty and returns
// how many rows it created.
func SeedProducts(ctx context.Context, products product.Repository) (int, error) {
	existing, err := products.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list products: %w", err)
	}
	if len(existing) > 0 {
		log.WithField("count", len(existing)).Info("seed: products already present")
		return 0, nil
	}
	n := 0
	for _, p := range DefaultProducts() {
		p.ID = id.NewID32()
		if err := products.Create(ctx, &p); err != nil {
			return n, fmt.Errorf("create product %q: %w", p.Name, err)
		}
		n++
	}
	log.WithField("count", n).Info("seed: products created")
	return n, nil
}
