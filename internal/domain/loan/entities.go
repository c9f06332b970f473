package loan

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/errs"
)

type State string

const (
	StateActive State = "active"
	StateClosed State = "closed"
)

var ErrNotFound = errs.Wrap(errs.ErrNotFound, "loan not found")

// Table: loans. At most one loan exists per application (unique ApplicationID).
type Loan struct {
	ID                string          `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	ApplicationID     string          `gorm:"column:application_id;type:char(32);not null;uniqueIndex:ux_loans_application" json:"application_id"`
	UserID            string          `gorm:"column:user_id;type:char(32);not null;index" json:"user_id"`
	ProductID         string          `gorm:"column:product_id;type:char(32);not null" json:"product_id"`
	OriginalAmount    decimal.Decimal `gorm:"column:original_amount;type:decimal(18,2);not null" json:"original_amount"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:decimal(18,2);not null" json:"outstanding_amount"`
	InterestRate      decimal.Decimal `gorm:"column:interest_rate;type:decimal(6,2);not null" json:"interest_rate"`
	TenureMonths      int             `gorm:"column:tenure_months;not null" json:"tenure_months"`
	MonthlyEMI        decimal.Decimal `gorm:"column:monthly_emi;type:decimal(18,2);not null" json:"monthly_emi"`
	State             State           `gorm:"column:status;type:varchar(16);not null;default:'active';index" json:"status"`
	DisbursedAt       time.Time       `gorm:"column:disbursed_at;not null" json:"disbursed_at"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }

// Listing is a loan joined with its borrower's email.
type Listing struct {
	Loan      `gorm:"embedded"`
	UserEmail string `gorm:"column:user_email" json:"user_email"`
}

// ApplyPayment lowers the outstanding balance by amount, flooring at zero,
// and closes the loan once nothing is owed. It returns the new balance.
func (l *Loan) ApplyPayment(amount decimal.Decimal) decimal.Decimal {
	next := l.OutstandingAmount.Sub(amount)
	if next.IsNegative() {
		next = decimal.Zero
	}
	l.OutstandingAmount = next
	if next.IsZero() {
		l.State = StateClosed
	}
	return next
}

// NextDueDate is the due date of the first installment not yet covered by
// paid. Partial installments do not count.
func (l *Loan) NextDueDate(paid decimal.Decimal) time.Time {
	covered := 0
	if l.MonthlyEMI.IsPositive() {
		covered = int(paid.Div(l.MonthlyEMI).IntPart())
	}
	return l.DisbursedAt.AddDate(0, covered+1, 0)
}

// IsOverdue reports whether an active loan with a balance has an installment
// whose due date passed before now.
func (l *Loan) IsOverdue(paid decimal.Decimal, now time.Time) bool {
	if l.State != StateActive || !l.OutstandingAmount.IsPositive() {
		return false
	}
	return now.After(l.NextDueDate(paid))
}
