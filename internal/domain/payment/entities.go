package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusCompleted = "completed"
	DefaultMethod   = "mock"
)

// Table: payments. Rows are append-only.
type Payment struct {
	ID          string          `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	LoanID      string          `gorm:"column:loan_id;type:char(32);not null;index:idx_payments_loan_date" json:"loan_id"`
	UserID      string          `gorm:"column:user_id;type:char(32);not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	Method      string          `gorm:"column:method;size:32;not null" json:"method"`
	ProviderRef *string         `gorm:"column:provider_ref;size:128" json:"provider_ref"`
	Status      string          `gorm:"column:status;size:16;not null" json:"status"`
	PaymentDate time.Time       `gorm:"column:payment_date;not null;index:idx_payments_loan_date" json:"payment_date"`
}

func (Payment) TableName() string { return "payments" }
