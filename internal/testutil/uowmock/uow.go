package uowmock

import (
	"context"
	"errors"

	"lending-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errNoTx = errors.New("uowmock: no transaction behaviour configured")

// UoW stands in for uow.UnitOfWork. Without WithinTxFn every call fails
// with errNoTx, so a usecase that must not open a transaction is caught.
// Committed and RolledBack count outcomes of the bodies it ran.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error

	Calls      int
	Committed  int
	RolledBack int
}

func New() *UoW { return &UoW{} }

// Passthrough runs each body directly against r. Nothing is undone on
// error; only the outcome is counted.
func Passthrough(r uow.Repos) *UoW {
	m := New()
	m.WithinTxFn = func(_ context.Context, fn func(uow.Repos) error) error {
		return fn(r)
	}
	return m
}

// Failing refuses to begin any transaction, as a lost database would.
func Failing(err error) *UoW {
	m := New()
	m.WithinTxFn = func(context.Context, func(uow.Repos) error) error { return err }
	return m
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	m.Calls++
	if m.WithinTxFn == nil {
		return errNoTx
	}
	err := m.WithinTxFn(ctx, fn)
	if err != nil {
		m.RolledBack++
		return err
	}
	m.Committed++
	return nil
}
