package application

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"lending-backend/internal/domain/application"
	"lending-backend/internal/domain/audit"
	"lending-backend/internal/domain/errs"
	"lending-backend/internal/domain/loan"
	"lending-backend/internal/domain/product"
	"lending-backend/internal/domain/uow"
	"lending-backend/internal/domain/user"
	"lending-backend/internal/testutil/applicationmock"
	"lending-backend/internal/testutil/auditmock"
	"lending-backend/internal/testutil/loanmock"
	"lending-backend/internal/testutil/productmock"
	"lending-backend/internal/testutil/uowmock"
)

var (
	customer = user.Identity{ID: "c1", Role: user.RoleCustomer}
	admin    = user.Identity{ID: "a1", Role: user.RoleAdmin}
)

func personalLoan() *product.Product {
	return &product.Product{
		ID:              "p1",
		MinAmount:       decimal.NewFromInt(1000),
		MaxAmount:       decimal.NewFromInt(50000),
		BaseInterest:    decimal.NewFromInt(12),
		MinTenureMonths: 6,
		MaxTenureMonths: 36,
	}
}

func TestSubmit(t *testing.T) {
	tests := []struct {
		name     string
		in       SubmitInput
		prodErr  error
		wantErr  error
		wantNote string
	}{
		{
			name: "happy path",
			in:   SubmitInput{ProductID: "p1", RequestedAmount: decimal.NewFromInt(10000), RequestedTenure: 12},
		},
		{
			name:     "note is trimmed and stored",
			in:       SubmitInput{ProductID: "p1", RequestedAmount: decimal.NewFromInt(10000), RequestedTenure: 12, Note: "  please expedite "},
			wantNote: "please expedite",
		},
		{
			name: "blank note stays nil",
			in:   SubmitInput{ProductID: "p1", RequestedAmount: decimal.NewFromInt(10000), RequestedTenure: 12, Note: "   "},
		},
		{
			name:    "missing product id",
			in:      SubmitInput{RequestedAmount: decimal.NewFromInt(10000), RequestedTenure: 12},
			wantErr: ErrMissingFields,
		},
		{
			name:    "zero amount",
			in:      SubmitInput{ProductID: "p1", RequestedTenure: 12},
			wantErr: ErrMissingFields,
		},
		{
			name:    "negative amount",
			in:      SubmitInput{ProductID: "p1", RequestedAmount: decimal.NewFromInt(-5), RequestedTenure: 12},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "unknown product",
			in:      SubmitInput{ProductID: "nope", RequestedAmount: decimal.NewFromInt(10000), RequestedTenure: 12},
			prodErr: gorm.ErrRecordNotFound,
			wantErr: ErrUnknownProduct,
		},
		{
			name:    "amount above product max",
			in:      SubmitInput{ProductID: "p1", RequestedAmount: decimal.NewFromInt(60000), RequestedTenure: 12},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "tenure below product min",
			in:      SubmitInput{ProductID: "p1", RequestedAmount: decimal.NewFromInt(10000), RequestedTenure: 3},
			wantErr: errs.ErrValidation,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *application.Application
			apps := &applicationmock.Repo{CreateFn: func(_ context.Context, a *application.Application) error {
				created = a
				return nil
			}}
			prods := &productmock.Repo{GetByIDFn: func(context.Context, string) (*product.Product, error) {
				if tt.prodErr != nil {
					return nil, tt.prodErr
				}
				return personalLoan(), nil
			}}
			uc := NewUsecase(apps, prods, nil, nil, 10)

			got, err := uc.Submit(context.Background(), customer, tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				if created != nil {
					t.Fatalf("application inserted despite error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got.Status != application.StatusSubmitted || got.UserID != "c1" || len(got.ID) != 32 {
				t.Fatalf("unexpected application: %+v", got)
			}
			switch {
			case tt.wantNote == "" && got.Note != nil:
				t.Fatalf("Note = %q, want nil", *got.Note)
			case tt.wantNote != "" && (got.Note == nil || *got.Note != tt.wantNote):
				t.Fatalf("Note = %v, want %q", got.Note, tt.wantNote)
			}
		})
	}
}

func TestListAdmin_Paging(t *testing.T) {
	tests := []struct {
		name       string
		q          AdminQuery
		total      int64
		wantLimit  int
		wantOffset int
		wantPage   int
		wantPages  int
		wantErr    error
	}{
		{name: "defaults", q: AdminQuery{}, total: 0, wantLimit: 20, wantOffset: 0, wantPage: 1, wantPages: 0},
		{name: "page two of 25", q: AdminQuery{Page: 2, PageSize: 20}, total: 25, wantLimit: 20, wantOffset: 20, wantPage: 2, wantPages: 2},
		{name: "page size capped", q: AdminQuery{Page: 1, PageSize: 500}, total: 250, wantLimit: 100, wantOffset: 0, wantPage: 1, wantPages: 3},
		{name: "negative page clamps", q: AdminQuery{Page: -3, PageSize: 10}, total: 10, wantLimit: 10, wantOffset: 0, wantPage: 1, wantPages: 1},
		{name: "unknown status", q: AdminQuery{Status: "pending"}, wantErr: application.ErrInvalidStatus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apps := &applicationmock.Repo{SearchFn: func(_ context.Context, f application.Filter) ([]application.Listing, int64, error) {
				if f.Limit != tt.wantLimit || f.Offset != tt.wantOffset {
					t.Fatalf("filter limit/offset = %d/%d, want %d/%d", f.Limit, f.Offset, tt.wantLimit, tt.wantOffset)
				}
				return nil, tt.total, nil
			}}
			uc := NewUsecase(apps, nil, nil, nil, 10)
			page, err := uc.ListAdmin(context.Background(), tt.q)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if page.Page != tt.wantPage || page.Pages != tt.wantPages || page.Total != tt.total || page.Items == nil {
				t.Fatalf("unexpected page: %+v", page)
			}
		})
	}
}

func TestListAdmin_PassesFilters(t *testing.T) {
	apps := &applicationmock.Repo{SearchFn: func(_ context.Context, f application.Filter) ([]application.Listing, int64, error) {
		if f.Status != application.StatusApproved || f.Query != "ana@" {
			t.Fatalf("unexpected filter: %+v", f)
		}
		return []application.Listing{{UserEmail: "ana@x.io"}}, 1, nil
	}}
	page, err := NewUsecase(apps, nil, nil, nil, 10).ListAdmin(context.Background(), AdminQuery{Status: "approved", Query: "  ana@ "})
	if err != nil || len(page.Items) != 1 {
		t.Fatalf("got (%+v, %v)", page, err)
	}
}

// transitionFixture wires mocks for one Transition call.
type transitionFixture struct {
	app      *application.Application
	existing *loan.Loan
	product  *product.Product
	createFn func(*loan.Loan) error
	saved    int
	created  []*loan.Loan
	audits   *auditmock.Repo
}

func (f *transitionFixture) usecase() *Usecase {
	apps := &applicationmock.Repo{
		GetByIDForUpdateFn: func(context.Context, string) (*application.Application, error) {
			if f.app == nil {
				return nil, gorm.ErrRecordNotFound
			}
			return f.app, nil
		},
		SaveFn: func(context.Context, *application.Application) error {
			f.saved++
			return nil
		},
	}
	loans := &loanmock.Repo{
		GetByApplicationIDFn: func(context.Context, string) (*loan.Loan, error) {
			if f.existing != nil {
				return f.existing, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(_ context.Context, l *loan.Loan) error {
			if f.createFn != nil {
				if err := f.createFn(l); err != nil {
					return err
				}
			}
			f.created = append(f.created, l)
			return nil
		},
	}
	prods := &productmock.Repo{GetByIDFn: func(context.Context, string) (*product.Product, error) {
		if f.product == nil {
			return nil, gorm.ErrRecordNotFound
		}
		return f.product, nil
	}}
	if f.audits == nil {
		f.audits = &auditmock.Repo{}
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Loans: loans, Products: prods})
	return NewUsecase(apps, prods, f.audits, tx, 10)
}

func submittedApp() *application.Application {
	return &application.Application{
		ID:              "app1",
		UserID:          "c1",
		ProductID:       "p1",
		RequestedAmount: decimal.NewFromInt(12000),
		RequestedTenure: 12,
		Status:          application.StatusSubmitted,
	}
}

func TestTransition_ApproveCreatesLoan(t *testing.T) {
	f := &transitionFixture{app: submittedApp(), product: personalLoan()}
	res, err := f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: "approved", Note: "ok"})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if res.Application.Status != application.StatusApproved || *res.Application.Note != "ok" {
		t.Fatalf("application not updated: %+v", res.Application)
	}
	if len(f.created) != 1 || res.Loan == nil {
		t.Fatalf("expected one loan, got %d", len(f.created))
	}
	l := res.Loan
	if !l.OriginalAmount.Equal(l.OutstandingAmount) || !l.OriginalAmount.Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("amounts: %+v", l)
	}
	if !l.InterestRate.Equal(decimal.NewFromInt(12)) || l.State != loan.StateActive {
		t.Fatalf("rate/state: %+v", l)
	}
	if want := decimal.RequireFromString("1066.19"); !l.MonthlyEMI.Equal(want) {
		t.Fatalf("emi = %s, want %s", l.MonthlyEMI, want)
	}
	if f.audits.Count() != 1 || f.audits.Entries[0].Action != "application:approved" || f.audits.Entries[0].AdminID != "a1" {
		t.Fatalf("audit entries: %+v", f.audits.Entries)
	}
}

func TestTransition_ApproveWithMissingProductUsesDefaultRate(t *testing.T) {
	f := &transitionFixture{app: submittedApp()}
	res, err := f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: "approved"})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if !res.Loan.InterestRate.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("rate = %s, want default 10", res.Loan.InterestRate)
	}
}

func TestTransition_ReapproveReturnsExistingLoan(t *testing.T) {
	app := submittedApp()
	app.Status = application.StatusApproved
	existing := &loan.Loan{ID: "l1", ApplicationID: "app1"}
	f := &transitionFixture{app: app, existing: existing}

	res, err := f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: "approved"})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if res.Loan != existing || len(f.created) != 0 || f.saved != 0 {
		t.Fatalf("re-approval must not write: created=%d saved=%d", len(f.created), f.saved)
	}
	if f.audits.Count() != 0 {
		t.Fatalf("no audit for a no-op transition")
	}
}

func TestTransition_ReapproveWithoutLoanCreatesOne(t *testing.T) {
	app := submittedApp()
	app.Status = application.StatusApproved
	f := &transitionFixture{app: app, product: personalLoan()}

	res, err := f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: "approved"})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if res.Loan == nil || len(f.created) != 1 || f.saved != 0 {
		t.Fatalf("created=%d saved=%d", len(f.created), f.saved)
	}
}

func TestTransition_Errors(t *testing.T) {
	rejected := submittedApp()
	rejected.Status = application.StatusRejected

	tests := []struct {
		name    string
		f       *transitionFixture
		status  string
		wantErr error
	}{
		{name: "invalid status", f: &transitionFixture{app: submittedApp()}, status: "pending", wantErr: application.ErrInvalidStatus},
		{name: "missing application", f: &transitionFixture{}, status: "approved", wantErr: application.ErrNotFound},
		{name: "rejected cannot be approved", f: &transitionFixture{app: rejected}, status: "approved", wantErr: application.ErrInvalidTransition},
		{
			name: "concurrent approval hits unique index",
			f: &transitionFixture{app: submittedApp(), product: personalLoan(), createFn: func(*loan.Loan) error {
				return gorm.ErrDuplicatedKey
			}},
			status:  "approved",
			wantErr: errs.ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: tt.status})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if tt.f.audits.Count() != 0 {
				t.Fatalf("audit written for failed transition")
			}
		})
	}
}

func TestTransition_RejectKeepsNoteWhenEmpty(t *testing.T) {
	app := submittedApp()
	prev := "keep me"
	app.Note = &prev
	f := &transitionFixture{app: app}

	res, err := f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: "rejected", Note: "  "})
	if err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if res.Loan != nil {
		t.Fatalf("rejection must not issue a loan")
	}
	if res.Application.Note == nil || *res.Application.Note != "keep me" {
		t.Fatalf("note replaced by empty value")
	}
}

func TestTransition_AuditFailureIsNotFatal(t *testing.T) {
	f := &transitionFixture{
		app:     submittedApp(),
		product: personalLoan(),
		audits: &auditmock.Repo{CreateFn: func(context.Context, *audit.Entry) error {
			return errors.New("audit table gone")
		}},
	}
	if _, err := f.usecase().Transition(context.Background(), admin, "app1", TransitionInput{Status: "approved"}); err != nil {
		t.Fatalf("audit failure leaked: %v", err)
	}
}
