package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/loans/:id/payments", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/loans/:id/payments", "204"))
	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/loans/"+id+"/payments", nil))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("status = %d", rec.Code)
		}
	}
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/loans/:id/payments", "204"))
	if after-before != 2 {
		t.Fatalf("requests_total delta = %v, want 2", after-before)
	}
}

func TestBusinessCounters(t *testing.T) {
	loans := testutil.ToFloat64(loansIssued)
	amount := testutil.ToFloat64(paymentsAmount)

	LoanIssued()
	PaymentRecorded(125.5)
	PaymentRecorded(-1)

	if got := testutil.ToFloat64(loansIssued) - loans; got != 1 {
		t.Fatalf("loans delta = %v", got)
	}
	if got := testutil.ToFloat64(paymentsAmount) - amount; got != 125.5 {
		t.Fatalf("amount delta = %v", got)
	}
}

func TestHandler_ServesRegistry(t *testing.T) {
	ApplicationSubmitted()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "lending_applications_submitted_total") {
		t.Fatalf("metric missing from exposition")
	}
}
