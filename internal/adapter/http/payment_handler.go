package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/loan"
	"lending-backend/internal/usecase/payment"
	"lending-backend/pkg/id"
)

type PaymentHandler struct{ uc *payment.Usecase }

func NewPaymentHandler(uc *payment.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type payReq struct {
	LoanID      string          `json:"loan_id" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0,dec2"`
	Method      string          `json:"method" validate:"max=32"`
	ProviderRef string          `json:"provider_ref" validate:"max=128"`
}

func (h *PaymentHandler) Pay(c echo.Context) error {
	var req payReq
	if valid, err := bind(c, &req); !valid {
		return err
	}
	res, err := h.uc.Pay(c.Request().Context(), caller(c), payment.PayInput(req))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusCreated, map[string]any{"payment": res.Payment, "outstanding": res.Outstanding})
}

func (h *PaymentHandler) ListByLoan(c echo.Context) error {
	loanID := c.Param("loanId")
	if !id.IsID32(loanID) {
		return fail(c, loan.ErrNotFound)
	}
	items, err := h.uc.ListByLoan(c.Request().Context(), caller(c), loanID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, http.StatusOK, map[string]any{"payments": items})
}
