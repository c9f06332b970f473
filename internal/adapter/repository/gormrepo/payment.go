package gormrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	paymentDomain "lending-backend/internal/domain/payment"
)

type PaymentRepository struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{db: db} }

func (r *PaymentRepository) Create(ctx context.Context, p *paymentDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PaymentRepository) ListByLoan(ctx context.Context, loanID string) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("loan_id = ?", loanID).
		Scopes(newestFirst("payments", "payment_date")).
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) ListRecentByUser(ctx context.Context, userID string, limit int) ([]paymentDomain.Payment, error) {
	var out []paymentDomain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Scopes(newestFirst("payments", "payment_date"), limitIfPositive(limit)).
		Find(&out).Error
	return out, err
}

func (r *PaymentRepository) SumByLoans(ctx context.Context, loanIDs []string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(loanIDs))
	if len(loanIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.WithContext(ctx).
		Model(&paymentDomain.Payment{}).
		Select("loan_id, COALESCE(SUM(amount), 0)").
		Where("loan_id IN ?", loanIDs).
		Group("loan_id").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			loanID string
			total  decimal.Decimal
		)
		if err := rows.Scan(&loanID, &total); err != nil {
			return nil, err
		}
		out[loanID] = total
	}
	return out, rows.Err()
}
