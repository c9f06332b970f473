package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/app"
	"lending-backend/internal/config"
	"lending-backend/internal/infrastructure/cache"
	"lending-backend/internal/infrastructure/db"
	"lending-backend/internal/infrastructure/logging"
	"lending-backend/internal/infrastructure/storage"
)

func main() {
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
	if cfg.DBAutoMigrate {
		if err := db.Migrate(gdb); err != nil {
			log.WithError(err).Fatal("migrate")
		}
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.WithError(err).Fatal("redis")
	}

	store, err := storage.NewLocal(cfg.UploadDir)
	if err != nil {
		log.WithError(err).Fatal("upload dir")
	}

	a, err := app.New(cfg, gdb, rdb, store)
	if err != nil {
		log.WithError(err).Fatal("wire app")
	}
	if err := a.Sweeper.Start(); err != nil {
		log.WithError(err).Fatal("docsweep")
	}

	addr := ":" + cfg.AppPort
	go func() {
		log.WithFields(log.Fields{"addr": addr, "env": cfg.AppEnv, "db": cfg.DBDriver}).Info("listening")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.Echo.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http shutdown")
	}
	select {
	case <-a.Sweeper.Stop().Done():
	case <-ctx.Done():
		log.Warn("docsweep still running at shutdown")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
