// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm/logger"
)

// Setup applies level and format ("json" or "text") to the standard logger.
// Unknown levels fall back to info.
func Setup(level, format string) {
	SetupTo(os.Stdout, level, format)
}

func SetupTo(w io.Writer, level, format string) {
	log.SetOutput(w)
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		log.SetFormatter(&log.JSONFormatter{TimestampFormat: time.RFC3339Nano})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// GormLogger routes GORM's slow-query and error output through logrus.
func GormLogger() logger.Interface {
	lvl := logger.Warn
	if log.IsLevelEnabled(log.DebugLevel) {
		lvl = logger.Info
	}
	return logger.New(log.StandardLogger(), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
	})
}
