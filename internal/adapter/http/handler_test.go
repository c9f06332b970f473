package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	up := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name       string
		db         Pinger
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		{"liveness only", nil, http.StatusOK, "ok", ""},
		{"database up", up, http.StatusOK, "ok", "ok"},
		{"database down", down, http.StatusServiceUnavailable, "degraded", "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
			start := time.Now().UTC()
			if err := NewHandler(tt.db).Health(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code = %d, want %d", rec.Code, tt.wantCode)
			}

			var body struct {
				Status string `json:"status"`
				Time   string `json:"time"`
				DB     string `json:"db"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
			}
			if body.Status != tt.wantStatus || body.DB != tt.wantDB {
				t.Fatalf("status=%q db=%q, want %q %q", body.Status, body.DB, tt.wantStatus, tt.wantDB)
			}
			at, err := time.Parse(time.RFC3339Nano, body.Time)
			if err != nil || at.Location() != time.UTC {
				t.Fatalf("time %q is not UTC RFC3339Nano: %v", body.Time, err)
			}
			if at.Before(start.Add(-2 * time.Second)) {
				t.Fatalf("stale time %v", at)
			}
		})
	}
}
