package application

import (
	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/loan"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type SubmitInput struct {
	ProductID       string
	RequestedAmount decimal.Decimal
	RequestedTenure int
	Note            string
}

// AdminQuery is the raw admin listing request; Page and PageSize are
// normalized by the usecase.
type AdminQuery struct {
	Page     int
	PageSize int
	Status   string
	Query    string
}

type Page struct {
	Items    []application.Listing `json:"applications"`
	Total    int64                 `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Pages    int                   `json:"pages"`
}

type TransitionInput struct {
	Status string
	Note   string
}

// TransitionResult carries the loan only when the application is approved.
type TransitionResult struct {
	Application *application.Application `json:"application"`
	Loan        *loan.Loan               `json:"loan"`
}
