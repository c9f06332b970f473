package payment

import (
	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/payment"
)

type PayInput struct {
	LoanID      string
	Amount      decimal.Decimal
	Method      string
	ProviderRef string
}

type PayResult struct {
	Payment     *payment.Payment `json:"payment"`
	Outstanding decimal.Decimal  `json:"outstanding"`
}
