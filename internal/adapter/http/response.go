package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"lending-backend/internal/domain/errs"
)

// respond writes {"ok":true, ...fields}.
func respond(c echo.Context, code int, fields map[string]any) error {
	body := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		body[k] = v
	}
	body["ok"] = true
	return c.JSON(code, body)
}

func badRequest(c echo.Context, msg string, details []FieldError) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Details: details})
}

// StatusOf maps a domain error kind to its HTTP status; anything unknown is 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// fail renders a usecase error. Client errors carry their own message;
// everything else is logged and hidden behind a generic one.
func fail(c echo.Context, err error) error {
	code := StatusOf(err)
	if code == http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{
			"method":     c.Request().Method,
			"route":      c.Path(),
			"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
		}).Error("http: request failed")
		return c.JSON(code, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

// ErrorHandler renders errors that escape handlers (unknown routes, body
// limit, rate limit, panics caught by Recover) in the same envelope.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, isStr := he.Message.(string); isStr && m != "" {
			msg = m
		}
		if he.Code >= http.StatusInternalServerError {
			log.WithError(err).WithField("route", c.Path()).Error("http: request failed")
			msg = "internal server error"
		}
		err = c.JSON(he.Code, ErrorResponse{Error: msg})
	} else {
		err = fail(c, err)
	}
	if err != nil {
		log.WithError(err).Warn("http: failed to write error response")
	}
}
