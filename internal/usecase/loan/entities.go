package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/loan"
)

// Summary is the borrower-facing view of one loan, with its repayment
// position derived from recorded payments.
type Summary struct {
	loan.Loan
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	NextDueDate *time.Time      `json:"next_due_date"`
	Overdue     bool            `json:"overdue"`
}
