package application

import (
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/errs"
)

type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var (
	ErrNotFound          = errs.Wrap(errs.ErrNotFound, "application not found")
	ErrInvalidStatus     = errs.Validation("invalid status")
	ErrInvalidTransition = errs.Wrap(errs.ErrConflict, "application is already finalized")
	ErrAlreadyDisbursed  = errs.Wrap(errs.ErrConflict, "a loan was already issued for this application")
)

// ParseStatus accepts only the three lifecycle states.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusSubmitted, StatusApproved, StatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Terminal reports whether no further transition may leave s.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// Table: loan_applications
type Application struct {
	ID              string          `gorm:"column:id;type:char(32);primaryKey" json:"id"`
	UserID          string          `gorm:"column:user_id;type:char(32);not null;index:idx_applications_user_created" json:"user_id"`
	ProductID       string          `gorm:"column:product_id;type:char(32);not null" json:"product_id"`
	RequestedAmount decimal.Decimal `gorm:"column:requested_amount;type:decimal(18,2);not null" json:"requested_amount"`
	RequestedTenure int             `gorm:"column:requested_tenure;not null" json:"requested_tenure"`
	Status          Status          `gorm:"column:status;type:varchar(16);not null;default:'submitted';index" json:"status"`
	Note            *string         `gorm:"column:note;type:text" json:"note"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime;index:idx_applications_user_created" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// Listing is an application joined with its applicant's email.
type Listing struct {
	Application `gorm:"embedded"`
	UserEmail   string `gorm:"column:user_email" json:"user_email"`
}

// Filter drives admin listings and the CSV export. Limit <= 0 means no paging.
type Filter struct {
	Status Status
	Query  string
	Limit  int
	Offset int
}
