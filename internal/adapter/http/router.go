package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"lending-backend/internal/adapter/middleware"
	"lending-backend/internal/config"
	"lending-backend/internal/infrastructure/metrics"
	"lending-backend/internal/usecase/application"
	"lending-backend/internal/usecase/auth"
	"lending-backend/internal/usecase/dashboard"
	docuc "lending-backend/internal/usecase/document"
	"lending-backend/internal/usecase/loan"
	"lending-backend/internal/usecase/payment"
	"lending-backend/internal/usecase/product"
)

const jsonBodyLimit = "1M"

// Deps are the collaborators the router wires into handlers. DB and Redis
// may be nil.
type Deps struct {
	DB           Pinger
	Redis        *redis.Client
	Auth         *auth.Usecase
	Products     *product.Usecase
	Applications *application.Usecase
	Loans        *loan.Usecase
	Payments     *payment.Usecase
	Dashboard    *dashboard.Usecase
	Documents    *docuc.Usecase
}

func NewRouter(cfg *config.Config, d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler

	uploadPath := "/api/documents"
	e.Use(
		echomw.Recover(),
		echomw.RequestID(),
		middleware.RequestLogger(),
		metrics.Middleware(),
		echomw.Secure(),
		echomw.GzipWithConfig(echomw.GzipConfig{
			Skipper: func(c echo.Context) bool { return c.Path() == "/metrics" },
		}),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     []string{cfg.FrontendURL},
			AllowCredentials: true,
			AllowHeaders: []string{
				echo.HeaderContentType, echo.HeaderAccept,
				middleware.HeaderIdempotencyKey, middleware.HeaderIdempotencyTimestamp,
			},
		}),
		echomw.BodyLimitWithConfig(echomw.BodyLimitConfig{
			Limit: jsonBodyLimit,
			Skipper: func(c echo.Context) bool {
				return c.Request().Method == http.MethodPost && c.Path() == uploadPath
			},
		}),
	)
	if cfg.StaticDir != "" {
		e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
			Root:  cfg.StaticDir,
			HTML5: true,
			Skipper: func(c echo.Context) bool {
				p := c.Request().URL.Path
				return strings.HasPrefix(p, "/api") || p == "/health" || p == "/metrics"
			},
		}))
	}

	base := NewHandler(d.DB)
	e.GET("/health", base.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	if cfg.RateLimitPerMinute > 0 {
		api.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(float64(cfg.RateLimitPerMinute) / 60),
				Burst:     cfg.RateLimitPerMinute,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}

	secure, sameSite := cfg.CookieSecurity()
	authH := NewAuthHandler(d.Auth, CookieConfig{Name: cfg.CookieName, Secure: secure, SameSite: sameSite})
	requireAuth := middleware.RequireAuth(d.Auth, cfg.CookieName)
	admin := middleware.RequireAdmin()
	idem := middleware.Idempotency(d.Redis, cfg.IdempotencyTTL())

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)
	api.POST("/auth/logout", authH.Logout)
	api.GET("/me", authH.Me, requireAuth)

	prod := NewProductHandler(d.Products)
	api.GET("/products", prod.List)
	api.GET("/products/:id", prod.Get)

	apps := NewApplicationHandler(d.Applications)
	ag := api.Group("/applications", requireAuth)
	ag.POST("", apps.Submit, idem)
	ag.GET("", apps.ListMine)
	ag.GET("/admin", apps.ListAdmin, admin)
	ag.GET("/admin/all", apps.ListAll, admin)
	ag.PATCH("/:id", apps.Transition, admin, idem)

	loans := NewLoanHandler(d.Loans)
	lg := api.Group("/loans", requireAuth)
	lg.GET("", loans.ListMine)
	lg.GET("/admin/all", loans.ListAll, admin)

	pays := NewPaymentHandler(d.Payments)
	pg := api.Group("/payments", requireAuth)
	pg.POST("/pay", pays.Pay, idem)
	pg.GET("/loan/:loanId", pays.ListByLoan)

	dash := NewDashboardHandler(d.Dashboard)
	dg := api.Group("/dashboard", requireAuth)
	dg.GET("/customer", dash.Customer)
	dg.GET("/admin", dash.Admin, admin)
	dg.GET("/admin/applications.csv", dash.ExportCSV, admin)

	docs := NewDocumentHandler(d.Documents)
	docg := api.Group("/documents", requireAuth)
	// multipart framing rides on top of the file limit
	docg.POST("", docs.Upload, echomw.BodyLimit(fmt.Sprintf("%dK", cfg.MaxUploadBytes>>10+1024)))
	docg.GET("", docs.ListMine)
	docg.GET("/admin/all", docs.ListAll, admin)
	docg.GET("/:id/download", docs.Download)

	return e
}
