package db

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/audit"
	"lending-backend/internal/domain/document"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/payment"
	"lending-backend/internal/domain/product"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/infrastructure/logging"
)

// Dialector picks the GORM driver for driver ("mysql", "postgres", "sqlite").
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	db, err := OpenGormWithDialector(dial)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// one writer; also keeps :memory: databases alive across the pool
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}
	return db, nil
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         logging.GormLogger(),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	log.WithField("dialect", dial.Name()).Info("gorm: connected")
	return db, nil
}

// Models lists every table the service owns, in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&product.Product{},
		&application.Application{},
		&loan.Loan{},
		&payment.Payment{},
		&document.Document{},
		&audit.Entry{},
	}
}

// Migrate creates or updates the schema for Models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
