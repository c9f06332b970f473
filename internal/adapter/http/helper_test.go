package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"lending-backend/internal/adapter/middleware"
	"lending-backend/internal/domain/user"
)

var (
	customer = user.Identity{ID: strings.Repeat("c", 32), Email: "cust@example.com", Name: "Cust", Role: user.RoleCustomer}
	adminID  = user.Identity{ID: strings.Repeat("a", 32), Email: "admin@example.com", Name: "Admin", Role: user.RoleAdmin}
)

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// newCtx builds a handler context as if RequireAuth had admitted who.
func newCtx(e *echo.Echo, method, target string, body io.Reader, who *user.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if who != nil {
		middleware.SetIdentity(c, *who)
	}
	return c, rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v; raw=%s", err, rec.Body.String())
	}
	return out
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
