// Package app wires repositories, usecases and transports into a runnable
// service. Both cmd/api and the end-to-end tests build through New.
package app

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	httpadp "lending-backend/internal/adapter/http"
	"lending-backend/internal/adapter/repository/gormrepo"
	"lending-backend/internal/config"
	"lending-backend/internal/domain/document"
	"lending-backend/internal/infrastructure/session"
	"lending-backend/internal/usecase/application"
	"lending-backend/internal/usecase/auth"
	"lending-backend/internal/usecase/dashboard"
	docuc "lending-backend/internal/usecase/document"
	"lending-backend/internal/usecase/loan"
	"lending-backend/internal/usecase/payment"
	"lending-backend/internal/usecase/product"
	"lending-backend/internal/worker/docsweep"
)

type App struct {
	Echo    *echo.Echo
	Sweeper *docsweep.Scheduler
}

// New builds the service on an already migrated gdb. rdb may be nil.
func New(cfg *config.Config, gdb *gorm.DB, rdb *redis.Client, store document.Store) (*App, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("sql handle: %w", err)
	}

	users := gormrepo.NewUserRepository(gdb)
	products := gormrepo.NewProductRepository(gdb)
	apps := gormrepo.NewApplicationRepository(gdb)
	loans := gormrepo.NewLoanRepository(gdb)
	payments := gormrepo.NewPaymentRepository(gdb)
	docs := gormrepo.NewDocumentRepository(gdb)
	audits := gormrepo.NewAuditRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	sessions := session.NewManager(cfg.JWTSecret, cfg.SessionTTL, rdb)
	documents := docuc.NewUsecase(docs, apps, store, cfg.MaxUploadBytes)

	e := httpadp.NewRouter(cfg, httpadp.Deps{
		DB:           sqlDB,
		Redis:        rdb,
		Auth:         auth.NewUsecase(users, sessions, cfg.BcryptCost),
		Products:     product.NewUsecase(products),
		Applications: application.NewUsecase(apps, products, audits, tx, cfg.DefaultInterestRate),
		Loans:        loan.NewUsecase(loans, payments),
		Payments:     payment.NewUsecase(loans, payments, tx),
		Dashboard:    dashboard.NewUsecase(apps, loans, payments, docs),
		Documents:    documents,
	})

	return &App{
		Echo:    e,
		Sweeper: docsweep.NewScheduler(documents, cfg.DocSweepSchedule, cfg.DocSweepGrace),
	}, nil
}
