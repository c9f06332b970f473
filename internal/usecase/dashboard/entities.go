package dashboard

import (
	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/document"
	"lending-backend/internal/domain/payment"
	loanuc "lending-backend/internal/usecase/loan"
)

const recentLimit = 20

type Customer struct {
	OutstandingTotal decimal.Decimal     `json:"outstanding_total"`
	NextEMIAmount    decimal.Decimal     `json:"next_emi_amount"`
	ActiveLoansCount int                 `json:"active_loans_count"`
	Loans            []loanuc.Summary    `json:"loans"`
	Payments         []payment.Payment   `json:"payments"`
	Documents        []document.Document `json:"documents"`
}

type Admin struct {
	ActiveLoans        int64                 `json:"active_loans"`
	TotalDisbursed     decimal.Decimal       `json:"total_disbursed"`
	PendingApps        int64                 `json:"pending_apps"`
	Overdue            int                   `json:"overdue"`
	RecentApplications []application.Listing `json:"recent_applications"`
}
