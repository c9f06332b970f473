package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/audit"
	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/product"
	"lending-backend/internal/domain/uow"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/infrastructure/metrics"
	"lending-backend/pkg/id"
)

var (
	ErrMissingFields  = errs.Validation("missing fields")
	ErrUnknownProduct = errs.Validation("unknown product")
)

type Usecase struct {
	apps        application.Repository
	products    product.Repository
	audits      audit.Repository
	uow         uow.UnitOfWork
	defaultRate decimal.Decimal
	now         func() time.Time
}

// NewUsecase: defaultRate (percent per year) is used when an approved
// application's product no longer exists.
func NewUsecase(apps application.Repository, products product.Repository, audits audit.Repository, tx uow.UnitOfWork, defaultRate float64) *Usecase {
	return &Usecase{
		apps:        apps,
		products:    products,
		audits:      audits,
		uow:         tx,
		defaultRate: decimal.NewFromFloat(defaultRate),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *Usecase) Submit(ctx context.Context, caller user.Identity, in SubmitInput) (*application.Application, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" || in.RequestedAmount.IsZero() || in.RequestedTenure == 0 {
		return nil, ErrMissingFields
	}
	if in.RequestedAmount.IsNegative() {
		return nil, errs.Validation("requested_amount must be positive")
	}
	if in.RequestedTenure < 0 {
		return nil, errs.Validation("requested_tenure must be positive")
	}

	p, err := u.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownProduct
		}
		return nil, err
	}
	amount := in.RequestedAmount.Round(2)
	if err := p.CheckRequest(amount, in.RequestedTenure); err != nil {
		return nil, err
	}

	a := &application.Application{
		ID:              id.NewID32(),
		UserID:          caller.ID,
		ProductID:       p.ID,
		RequestedAmount: amount,
		RequestedTenure: in.RequestedTenure,
		Status:          application.StatusSubmitted,
	}
	if note := strings.TrimSpace(in.Note); note != "" {
		a.Note = &note
	}
	if err := u.apps.Create(ctx, a); err != nil {
		return nil, err
	}
	metrics.ApplicationSubmitted()
	return a, nil
}

func (u *Usecase) ListMine(ctx context.Context, caller user.Identity) ([]application.Application, error) {
	out, err := u.apps.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []application.Application{}
	}
	return out, nil
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return page, size
}

// ParseFilter validates the shared admin filters (status, free-text query).
func ParseFilter(status, query string) (application.Filter, error) {
	f := application.Filter{Query: strings.TrimSpace(query)}
	if s := strings.TrimSpace(status); s != "" {
		st, err := application.ParseStatus(s)
		if err != nil {
			return f, err
		}
		f.Status = st
	}
	return f, nil
}

func (u *Usecase) ListAdmin(ctx context.Context, q AdminQuery) (*Page, error) {
	f, err := ParseFilter(q.Status, q.Query)
	if err != nil {
		return nil, err
	}
	page, size := normalizePage(q.Page, q.PageSize)
	f.Limit = size
	f.Offset = (page - 1) * size

	items, total, err := u.apps.Search(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []application.Listing{}
	}
	return &Page{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: size,
		Pages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

func (u *Usecase) ListAll(ctx context.Context) ([]application.Listing, error) {
	items, _, err := u.apps.Search(ctx, application.Filter{})
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []application.Listing{}
	}
	return items, nil
}

// Transition moves an application to in.Status. Approval issues at most one
// loan per application; the row lock and the unique index on
// loans.application_id both guard that.
func (u *Usecase) Transition(ctx context.Context, admin user.Identity, appID string, in TransitionInput) (*TransitionResult, error) {
	status, err := application.ParseStatus(strings.TrimSpace(in.Status))
	if err != nil {
		return nil, err
	}
	note := strings.TrimSpace(in.Note)

	var (
		res        TransitionResult
		changed    bool
		loanIssued bool
	)
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := r.Applications.GetByIDForUpdate(ctx, appID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return application.ErrNotFound
			}
			return err
		}

		switch {
		case a.Status.Terminal() && a.Status != status:
			return application.ErrInvalidTransition
		case a.Status.Terminal():
			// re-issued decision; nothing to write
		default:
			a.Status = status
			if note != "" {
				a.Note = &note
			}
			a.UpdatedAt = u.now()
			if err := r.Applications.Save(ctx, a); err != nil {
				return err
			}
			changed = true
		}
		res.Application = a

		if status != application.StatusApproved {
			return nil
		}
		l, created, err := u.ensureLoan(ctx, r, a)
		if err != nil {
			return err
		}
		res.Loan = l
		loanIssued = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if loanIssued {
		metrics.LoanIssued()
	}
	if changed || loanIssued {
		metrics.ApplicationDecided(string(status))
		u.recordAudit(ctx, admin, res.Application, note)
	}
	return &res, nil
}

func (u *Usecase) ensureLoan(ctx context.Context, r uow.Repos, a *application.Application) (*loan.Loan, bool, error) {
	existing, err := r.Loans.GetByApplicationID(ctx, a.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	rate := u.defaultRate
	switch p, err := r.Products.GetByID(ctx, a.ProductID); {
	case err == nil:
		rate = p.BaseInterest
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, err
	}

	now := u.now()
	l := &loan.Loan{
		ID:                id.NewID32(),
		ApplicationID:     a.ID,
		UserID:            a.UserID,
		ProductID:         a.ProductID,
		OriginalAmount:    a.RequestedAmount,
		OutstandingAmount: a.RequestedAmount,
		InterestRate:      rate,
		TenureMonths:      a.RequestedTenure,
		MonthlyEMI:        loan.MonthlyEMI(a.RequestedAmount, rate, a.RequestedTenure),
		State:             loan.StateActive,
		DisbursedAt:       now,
	}
	if err := r.Loans.Create(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, false, application.ErrAlreadyDisbursed
		}
		return nil, false, err
	}
	return l, true, nil
}

// recordAudit is best-effort: the decision is already committed.
func (u *Usecase) recordAudit(ctx context.Context, admin user.Identity, a *application.Application, note string) {
	if u.audits == nil || a == nil {
		return
	}
	meta := map[string]any{"note": nil}
	if note != "" {
		meta["note"] = note
	}
	b, _ := json.Marshal(meta)
	e := &audit.Entry{
		ID:         id.NewID32(),
		AdminID:    admin.ID,
		Action:     "application:" + string(a.Status),
		TargetType: "loan_application",
		TargetID:   a.ID,
		Metadata:   string(b),
	}
	if err := u.audits.Create(ctx, e); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"application_id": a.ID,
			"admin_id":       admin.ID,
		}).Warn("audit: failed to record application transition")
	}
}
