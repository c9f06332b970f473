package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/user"
)

const identityKey = "identity"

// Authenticator resolves a session token into the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (user.Identity, error)
}

// RequireAuth rejects requests without a valid session cookie. On success the
// identity is stored on the echo context and on the request context.
func RequireAuth(a Authenticator, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return deny(c, http.StatusUnauthorized, "Not authenticated")
			}
			id, err := a.Authenticate(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, errs.ErrUnauthenticated) {
					return deny(c, http.StatusUnauthorized, err.Error())
				}
				log.WithError(err).WithField("path", c.Path()).Error("auth: session lookup failed")
				return deny(c, http.StatusInternalServerError, "internal server error")
			}
			SetIdentity(c, id)
			return next(c)
		}
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := CurrentIdentity(c)
			if !ok {
				return deny(c, http.StatusUnauthorized, "Not authenticated")
			}
			if !id.IsAdmin() {
				return deny(c, http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}

// SetIdentity attaches id to both the echo context and the request context.
func SetIdentity(c echo.Context, id user.Identity) {
	c.Set(identityKey, id)
	c.SetRequest(c.Request().WithContext(user.WithIdentity(c.Request().Context(), id)))
}

func CurrentIdentity(c echo.Context) (user.Identity, bool) {
	id, ok := c.Get(identityKey).(user.Identity)
	return id, ok
}

func deny(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]any{"ok": false, "error": msg})
}
