package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the service's collectors; /metrics serves only this.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "lending",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lending",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	applicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "applications",
			Name:      "submitted_total",
			Help:      "Loan applications submitted.",
		},
	)

	applicationDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "applications",
			Name:      "decisions_total",
			Help:      "Admin status changes by resulting status.",
		},
		[]string{"status"},
	)

	loansIssued = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "loans",
			Name:      "issued_total",
			Help:      "Loans created from approved applications.",
		},
	)

	paymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "payments",
			Name:      "recorded_total",
			Help:      "Payments recorded against loans.",
		},
	)

	paymentsAmount = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "payments",
			Name:      "amount_total",
			Help:      "Sum of recorded payment amounts.",
		},
	)

	documentsSwept = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "lending",
			Subsystem: "documents",
			Name:      "orphans_removed_total",
			Help:      "Stored files removed because no document row referenced them.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		applicationsSubmitted,
		applicationDecisions,
		loansIssued,
		paymentsRecorded,
		paymentsAmount,
		documentsSwept,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler exposes Registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency labelled by route template,
// so path ids do not explode label cardinality.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Path() == "/metrics" {
				return next(c)
			}
			start := time.Now()
			httpInFlight.Inc()
			defer httpInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if !c.Response().Committed {
					status = http.StatusInternalServerError
				}
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := strings.ToUpper(c.Request().Method)
			httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func ApplicationSubmitted() { applicationsSubmitted.Inc() }

func ApplicationDecided(status string) { applicationDecisions.WithLabelValues(status).Inc() }

func LoanIssued() { loansIssued.Inc() }

func PaymentRecorded(amount float64) {
	paymentsRecorded.Inc()
	if amount > 0 {
		paymentsAmount.Add(amount)
	}
}

func DocumentsSwept(n int) {
	if n > 0 {
		documentsSwept.Add(float64(n))
	}
}
