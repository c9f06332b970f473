package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/payment"
	"lending-backend/internal/domain/uow"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/infrastructure/metrics"
	"lending-backend/pkg/id"
)

var (
	ErrMissingFields  = errs.Validation("missing fields")
	ErrAmountPositive = errs.Validation("amount must be greater than zero")
	ErrNotYourLoan    = errs.Forbidden("forbidden")
)

type Usecase struct {
	loans    loan.Repository
	payments payment.Repository
	uow      uow.UnitOfWork
	now      func() time.Time
}

func NewUsecase(loans loan.Repository, payments payment.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		loans:    loans,
		payments: payments,
		uow:      tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Pay records a mock payment and lowers the loan's outstanding balance in one
// transaction. The balance floors at zero and the loan closes when it does.
func (u *Usecase) Pay(ctx context.Context, caller user.Identity, in PayInput) (*PayResult, error) {
	loanID := strings.TrimSpace(in.LoanID)
	if loanID == "" || in.Amount.IsZero() {
		return nil, ErrMissingFields
	}
	if !in.Amount.IsPositive() {
		return nil, ErrAmountPositive
	}
	amount := in.Amount.Round(2)
	method := strings.TrimSpace(in.Method)
	if method == "" {
		method = payment.DefaultMethod
	}

	var res PayResult
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loan.ErrNotFound
			}
			return err
		}
		if !caller.CanAccess(l.UserID) {
			return ErrNotYourLoan
		}

		p := &payment.Payment{
			ID:          id.NewID32(),
			LoanID:      l.ID,
			UserID:      caller.ID,
			Amount:      amount,
			Method:      method,
			Status:      payment.StatusCompleted,
			PaymentDate: u.now(),
		}
		if ref := strings.TrimSpace(in.ProviderRef); ref != "" {
			p.ProviderRef = &ref
		}
		if err := r.Payments.Create(ctx, p); err != nil {
			return err
		}

		res.Outstanding = l.ApplyPayment(amount)
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		res.Payment = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.PaymentRecorded(amount.InexactFloat64())
	return &res, nil
}

// ListByLoan returns a loan's payments newest first, to its owner or an admin.
func (u *Usecase) ListByLoan(ctx context.Context, caller user.Identity, loanID string) ([]payment.Payment, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrNotFound
		}
		return nil, err
	}
	if !caller.CanAccess(l.UserID) {
		return nil, ErrNotYourLoan
	}
	out, err := u.payments.ListByLoan(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []payment.Payment{}
	}
	return out, nil
}
