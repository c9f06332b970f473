package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domain "lending-backend/internal/domain/product"
	"lending-backend/internal/usecase/product"
	"lending-backend/pkg/id"
)

type ProductHandler struct{ uc *product.Usecase }

func NewProductHandler(uc *product.Usecase) *ProductHandler { return &ProductHandler{uc: uc} }

func (h *ProductHandler) List(c echo.Context) error {
	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"products": items})
}

func (h *ProductHandler) Get(c echo.Context) error {
	pid := c.Param("id")
	if !id.IsID32(pid) {
		return fail(c, domain.ErrNotFound)
	}
	p, err := h.uc.Get(c.Request().Context(), pid)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"product": p})
}
