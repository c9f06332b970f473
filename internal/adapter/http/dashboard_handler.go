package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lending-backend/internal/usecase/dashboard"
)

type DashboardHandler struct{ uc *dashboard.Usecase }

func NewDashboardHandler(uc *dashboard.Usecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Customer(c echo.Context) error {
	d, err := h.uc.Customer(c.Request().Context(), caller(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"data": d})
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	d, err := h.uc.Admin(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"data": d})
}

// ExportCSV takes the same status/q filters as the admin application list.
func (h *DashboardHandler) ExportCSV(c echo.Context) error {
	body, err := h.uc.ExportApplicationsCSV(c.Request().Context(), c.QueryParam("status"), c.QueryParam("q"))
	if err != nil {
		return fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="applications.csv"`)
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", body)
}
