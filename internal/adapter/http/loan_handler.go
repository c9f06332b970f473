package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lending-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

func (h *LoanHandler) ListMine(c echo.Context) error {
	items, err := h.uc.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"loans": items})
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"loans": items})
}
