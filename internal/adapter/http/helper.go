package http

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"lending-backend/internal/adapter/middleware"
	"lending-backend/internal/domain/user"
)

// bind decodes the body into req and runs the struct validator. On failure it
// has already written the 400 response; the caller returns the second value.
func bind(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body", nil)
	}
	if err := c.Validate(req); err != nil {
		return false, badRequest(c, "missing or invalid fields", ToFieldErrors(err))
	}
	return true, nil
}

// caller is the identity RequireAuth attached; routes using it are always
// mounted behind that middleware.
func caller(c echo.Context) user.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}

// queryInt returns 0 for a missing or malformed value.
func queryInt(c echo.Context, name string) int {
	n, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}
	return n
}
