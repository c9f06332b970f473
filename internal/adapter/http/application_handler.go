package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "lending-backend/internal/domain/application"
	"lending-backend/internal/usecase/application"
	"lending-backend/pkg/id"
)

type ApplicationHandler struct{ uc *application.Usecase }

func NewApplicationHandler(uc *application.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitReq struct {
	ProductID       string          `json:"product_id" validate:"required,hex32"`
	RequestedAmount decimal.Decimal `json:"requested_amount" validate:"gt=0,dec2"`
	RequestedTenure int             `json:"requested_tenure" validate:"required,gt=0"`
	Note            string          `json:"note" validate:"max=2000"`
}

type transitionReq struct {
	Status string `json:"status"`
	Note   string `json:"note" validate:"max=2000"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitReq
	if valid, err := bind(c, &req); !valid {
		return err
	}
	a, err := h.uc.Submit(c.Request().Context(), caller(c), application.SubmitInput(req))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, map[string]any{"application": a})
}

func (h *ApplicationHandler) ListMine(c echo.Context) error {
	items, err := h.uc.ListMine(c.Request().Context(), caller(c))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"applications": items})
}

// ListAdmin: ?page=&pageSize=&status=&q=
func (h *ApplicationHandler) ListAdmin(c echo.Context) error {
	p, err := h.uc.ListAdmin(c.Request().Context(), application.AdminQuery{
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
		Status:   c.QueryParam("status"),
		Query:    c.QueryParam("q"),
	})
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{
		"applications": p.Items,
		"total":        p.Total,
		"page":         p.Page,
		"pageSize":     p.PageSize,
		"pages":        p.Pages,
	})
}

func (h *ApplicationHandler) ListAll(c echo.Context) error {
	items, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"applications": items})
}

func (h *ApplicationHandler) Transition(c echo.Context) error {
	var req transitionReq
	if valid, err := bind(c, &req); !valid {
		return err
	}
	appID := c.Param("id")
	if !id.IsID32(appID) {
		return fail(c, domain.ErrNotFound)
	}
	res, err := h.uc.Transition(c.Request().Context(), caller(c), appID, application.TransitionInput(req))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"application": res.Application, "loan": res.Loan})
}
