//go:build integration

package gormrepo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/uow"
	"lending-backend/internal/infrastructure/db"
)

func openPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("lending_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		postgres.BasicWaitStrategies(),
		testcontainers.WithLabels(map[string]string{"test": "lending-gormrepo", "test-name": t.Name()}),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	gdb, err := db.OpenGorm("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

// Two admins approving the same application at once must yield one loan.
func TestPostgres_ConcurrentApproveIssuesOneLoan(t *testing.T) {
	gdb := openPostgres(t)
	ctx := context.Background()
	a := mustApplication(t, gdb, mustUser(t, gdb, "race@example.com"), mustProduct(t, gdb), time.Now().UTC())
	u := NewGormUoW(gdb)

	const workers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issued int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := u.WithinTx(ctx, func(r uow.Repos) error {
				got, err := r.Applications.GetByIDForUpdate(ctx, a.ID)
				if err != nil {
					return err
				}
				if got.Status != application.StatusSubmitted {
					return nil
				}
				got.Status = application.StatusApproved
				if err := r.Applications.Save(ctx, got); err != nil {
					return err
				}
				if err := r.Loans.Create(ctx, newLoan(got)); err != nil {
					return err
				}
				mu.Lock()
				issued++
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Equal(t, 1, issued)
	var n int64
	require.NoError(t, gdb.Model(&loan.Loan{}).Where("application_id = ?", a.ID).Count(&n).Error)
	require.EqualValues(t, 1, n)
}

func TestPostgres_SearchEscapesWildcards(t *testing.T) {
	gdb := openPostgres(t)
	p := mustProduct(t, gdb)
	mustApplication(t, gdb, mustUser(t, gdb, "50%_off@example.com"), p, time.Now().UTC())
	mustApplication(t, gdb, mustUser(t, gdb, "50xxoff@example.com"), p, time.Now().UTC())

	items, total, err := NewApplicationRepository(gdb).Search(context.Background(), application.Filter{Query: "50%_", Limit: 20})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "50%_off@example.com", items[0].UserEmail)
}
