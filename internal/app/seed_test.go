package app

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"lending-backend/internal/domain/product"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/testutil/productmock"
	"lending-backend/internal/testutil/usermock"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates admin when none exists", func(t *testing.T) {
		var got *user.User
		repo := &usermock.Repo{
			HasAdminFn: func(context.Context) (bool, error) { return false, nil },
			CreateFn:   func(_ context.Context, u *user.User) error { got = u; return nil },
		}
		created, err := SeedAdmin(ctx, repo, AdminSeed{Email: " Root@Example.com ", Password: "pw", LastName: "Ops"}, bcrypt.MinCost)
		if err != nil || !created {
			t.Fatalf("created=%v err=%v", created, err)
		}
		if got.Role != user.RoleAdmin || got.Email != "root@example.com" || got.FirstName != "Admin" {
			t.Fatalf("unexpected admin: %+v", got)
		}
		if got.LastName == nil || *got.LastName != "Ops" {
			t.Fatalf("last name = %v", got.LastName)
		}
		if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("pw")) != nil {
			t.Fatalf("password hash does not match")
		}
	})

	t.Run("skips when an admin exists", func(t *testing.T) {
		repo := &usermock.Repo{
			HasAdminFn: func(context.Context) (bool, error) { return true, nil },
			CreateFn: func(context.Context, *user.User) error {
				t.Fatalf("Create must not be called")
				return nil
			},
		}
		created, err := SeedAdmin(ctx, repo, AdminSeed{}, bcrypt.MinCost)
		if err != nil || created {
			t.Fatalf("created=%v err=%v", created, err)
		}
	})

	t.Run("requires credentials", func(t *testing.T) {
		repo := &usermock.Repo{HasAdminFn: func(context.Context) (bool, error) { return false, nil }}
		if _, err := SeedAdmin(ctx, repo, AdminSeed{Email: "root@example.com"}, bcrypt.MinCost); err == nil {
			t.Fatalf("expected error without password")
		}
	})

	t.Run("store failure", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &usermock.Repo{HasAdminFn: func(context.Context) (bool, error) { return false, boom }}
		if _, err := SeedAdmin(ctx, repo, AdminSeed{}, bcrypt.MinCost); !errors.Is(err, boom) {
			t.Fatalf("err = %v, want wrapped boom", err)
		}
	})
}

func TestSeedProducts(t *testing.T) {
	ctx := context.Background()

	var created []product.Product
	repo := &productmock.Repo{
		ListFn:   func(context.Context) ([]product.Product, error) { return nil, nil },
		CreateFn: func(_ context.Context, p *product.Product) error { created = append(created, *p); return nil },
	}
	n, err := SeedProducts(ctx, repo)
	if err != nil || n != len(DefaultProducts()) {
		t.Fatalf("n=%d err=%v", n, err)
	}
	seen := map[string]bool{}
	for _, p := range created {
		if seen[p.ID] || len(p.ID) != 32 {
			t.Fatalf("bad or duplicate id %q", p.ID)
		}
		seen[p.ID] = true
		if !p.MinAmount.LessThan(p.MaxAmount) || p.MinTenureMonths > p.MaxTenureMonths {
			t.Fatalf("inconsistent product ranges: %+v", p)
		}
	}

	repo.ListFn = func(context.Context) ([]product.Product, error) { return created, nil }
	if n, err := SeedProducts(ctx, repo); err != nil || n != 0 {
		t.Fatalf("second run n=%d err=%v", n, err)
	}
}
