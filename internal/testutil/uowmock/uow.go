package uowmock

import (
	"context"
	"errors"

	"dealflow-backend/internal/domain/deal"
	"dealflow-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork. Fill in the
// function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinDealTxFn func(ctx context.Context, userID, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinDealTx(ctx context.Context, userID, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
	if m.WithinDealTxFn != nil {
		return m.WithinDealTxFn(ctx, userID, dealID, fn)
	}
	return errUnimplemented
}

// Passthrough builds a UoW whose transactions simply run the callback
// against the given repos, with the deal variant serving deals from the
// Deals repo's locked read.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinDealTxFn: func(ctx context.Context, userID, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
			d, err := repos.Deals.GetByDealIDForUpdate(ctx, userID, dealID)
			if err != nil {
				return err
			}
			return fn(repos, d)
		},
	}
}
