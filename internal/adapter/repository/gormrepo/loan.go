package gormrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	loanDomain "lending-backend/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id string) (*loanDomain.Loan, error) {
	return r.first(ctx, r.db, "id = ?", id)
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id string) (*loanDomain.Loan, error) {
	return r.first(ctx, forUpdate(r.db), "id = ?", id)
}

func (r *LoanRepository) GetByApplicationID(ctx context.Context, applicationID string) (*loanDomain.Loan, error) {
	return r.first(ctx, r.db, "application_id = ?", applicationID)
}

func (r *LoanRepository) first(ctx context.Context, db *gorm.DB, cond string, arg any) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := db.WithContext(ctx).Where(cond, arg).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *LoanRepository) ListByUser(ctx context.Context, userID string) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(newestFirst("loans", "created_at")).
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Listing, error) {
	out := make([]loanDomain.Listing, 0)
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Joins("JOIN users ON users.id = loans.user_id").
		Select("loans.*, users.email AS user_email").
		Scopes(newestFirst("loans", "created_at")).
		Scan(&out).Error
	return out, err
}

func (r *LoanRepository) ListActive(ctx context.Context) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	err := r.db.WithContext(ctx).
		Where("status = ?", loanDomain.StateActive).
		Find(&out).Error
	return out, err
}

func (r *LoanRepository) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("status = ?", loanDomain.StateActive).
		Count(&n).Error
	return n, err
}

func (r *LoanRepository) SumOriginal(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Select("COALESCE(SUM(original_amount), 0)").
		Row().
		Scan(&total)
	return total, err
}
