package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// Pinger reports whether a backing service answers.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct{ db Pinger }

// NewHandler: db may be nil, in which case /health only reports liveness.
func NewHandler(db Pinger) *Handler { return &Handler{db: db} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			log.WithError(err).Warn("health: database ping failed")
			body["status"] = "degraded"
			body["db"] = "down"
			return c.JSON(http.StatusServiceUnavailable, body)
		}
		body["db"] = "ok"
	}
	return c.JSON(http.StatusOK, body)
}
