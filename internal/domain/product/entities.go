package product

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/errs"
)

var ErrNotFound = errs.Wrap(errs.ErrNotFound, "product not found")

// Table: loan_products. BaseInterest is percent per year.
type Product struct {
	ID              string          `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	Name            string          `gorm:"column:name;size:120;not null" json:"name"`
	Description     string          `gorm:"column:description;type:text" json:"description"`
	MinAmount       decimal.Decimal `gorm:"column:min_amount;type:decimal(18,2);not null" json:"min_amount"`
	MaxAmount       decimal.Decimal `gorm:"column:max_amount;type:decimal(18,2);not null" json:"max_amount"`
	BaseInterest    decimal.Decimal `gorm:"column:base_interest;type:decimal(6,2);not null" json:"base_interest"`
	MinTenureMonths int             `gorm:"column:min_tenure_months;not null" json:"min_tenure_months"`
	MaxTenureMonths int             `gorm:"column:max_tenure_months;not null" json:"max_tenure_months"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Product) TableName() string { return "loan_products" }

// CheckRequest validates a requested amount and tenure against the
// product's ranges. Zero bounds are treated as open.
func (p *Product) CheckRequest(amount decimal.Decimal, tenure int) error {
	if !p.MinAmount.IsZero() && amount.LessThan(p.MinAmount) {
		return errs.Validationf("requested_amount must be at least %s", p.MinAmount.StringFixed(2))
	}
	if !p.MaxAmount.IsZero() && amount.GreaterThan(p.MaxAmount) {
		return errs.Validationf("requested_amount must be at most %s", p.MaxAmount.StringFixed(2))
	}
	if p.MinTenureMonths > 0 && tenure < p.MinTenureMonths {
		return errs.Validationf("requested_tenure must be at least %d months", p.MinTenureMonths)
	}
	if p.MaxTenureMonths > 0 && tenure > p.MaxTenureMonths {
		return errs.Validationf("requested_tenure must be at most %d months", p.MaxTenureMonths)
	}
	return nil
}
