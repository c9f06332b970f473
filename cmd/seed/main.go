// Command seed creates the first admin account and, with -products, a
// default loan product catalog.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/adapter/repository/gormrepo"
	"lending-backend/internal/app"
	"lending-backend/internal/config"
	"lending-backend/internal/infrastructure/db"
	"lending-backend/internal/infrastructure/logging"
)

func main() {
	withProducts := flag.Bool("products", false, "also seed the default product catalog when it is empty")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("invalid config")
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.WithError(err).Fatal("database")
	}
	if err := db.Migrate(gdb); err != nil {
		log.WithError(err).Fatal("migrate")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	_, err = app.SeedAdmin(ctx, gormrepo.NewUserRepository(gdb), app.AdminSeed{
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		FirstName: cfg.AdminFirstName,
		LastName:  cfg.AdminLastName,
	}, cfg.BcryptCost)
	if err != nil {
		log.WithError(err).Fatal("seed admin")
	}

	if *withProducts {
		if _, err := app.SeedProducts(ctx, gormrepo.NewProductRepository(gdb)); err != nil {
			log.WithError(err).Fatal("seed products")
		}
	}
}
