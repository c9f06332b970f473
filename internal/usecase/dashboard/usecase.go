package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/document"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/payment"
	"lending-backend/internal/domain/user"
	applicationuc "lending-backend/internal/usecase/application"
	loanuc "lending-backend/internal/usecase/loan"
)

type Usecase struct {
	apps     application.Repository
	loans    loan.Repository
	payments payment.Repository
	docs     document.Repository
	now      func() time.Time
}

func NewUsecase(apps application.Repository, loans loan.Repository, payments payment.Repository, docs document.Repository) *Usecase {
	return &Usecase{apps: apps, loans: loans, payments: payments, docs: docs, now: time.Now}
}

func (u *Usecase) Customer(ctx context.Context, caller user.Identity) (*Customer, error) {
	loans, err := u.loans.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(loans))
	for i := range loans {
		ids[i] = loans[i].ID
	}
	paid, err := u.payments.SumByLoans(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &Customer{
		OutstandingTotal: decimal.Zero,
		NextEMIAmount:    decimal.Zero,
		Loans:            loanuc.Summarize(loans, paid, u.now()),
	}
	// loans arrive newest first, so the first active one is the most recent
	for _, l := range loans {
		out.OutstandingTotal = out.OutstandingTotal.Add(l.OutstandingAmount)
		if l.State != loan.StateActive {
			continue
		}
		if out.ActiveLoansCount == 0 {
			out.NextEMIAmount = l.MonthlyEMI
		}
		out.ActiveLoansCount++
	}

	if out.Payments, err = u.payments.ListRecentByUser(ctx, caller.ID, recentLimit); err != nil {
		return nil, err
	}
	if out.Documents, err = u.docs.ListByUser(ctx, caller.ID, recentLimit); err != nil {
		return nil, err
	}
	if out.Payments == nil {
		out.Payments = []payment.Payment{}
	}
	if out.Documents == nil {
		out.Documents = []document.Document{}
	}
	return out, nil
}

// Admin summarizes the whole book. TotalDisbursed counts closed loans too.
func (u *Usecase) Admin(ctx context.Context) (*Admin, error) {
	var (
		out = &Admin{}
		err error
	)
	if out.ActiveLoans, err = u.loans.CountActive(ctx); err != nil {
		return nil, err
	}
	if out.TotalDisbursed, err = u.loans.SumOriginal(ctx); err != nil {
		return nil, err
	}
	if out.PendingApps, err = u.apps.CountByStatus(ctx, application.StatusSubmitted); err != nil {
		return nil, err
	}
	if out.Overdue, err = u.countOverdue(ctx); err != nil {
		return nil, err
	}
	recent, _, err := u.apps.Search(ctx, application.Filter{Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	if recent == nil {
		recent = []application.Listing{}
	}
	out.RecentApplications = recent
	return out, nil
}

// countOverdue counts active loans whose next installment due date has passed.
func (u *Usecase) countOverdue(ctx context.Context) (int, error) {
	active, err := u.loans.ListActive(ctx)
	if err != nil || len(active) == 0 {
		return 0, err
	}
	ids := make([]string, len(active))
	for i := range active {
		ids[i] = active[i].ID
	}
	paid, err := u.payments.SumByLoans(ctx, ids)
	if err != nil {
		return 0, err
	}
	now := u.now()
	n := 0
	for i := range active {
		if active[i].IsOverdue(paid[active[i].ID], now) {
			n++
		}
	}
	return n, nil
}

// ExportApplicationsCSV renders every application matching status and query,
// newest first.
func (u *Usecase) ExportApplicationsCSV(ctx context.Context, status, query string) ([]byte, error) {
	f, err := applicationuc.ParseFilter(status, query)
	if err != nil {
		return nil, err
	}
	rows, _, err := u.apps.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	return encodeApplicationsCSV(rows), nil
}
