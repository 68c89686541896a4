package dealmock

import (
	"context"

	domain "dealflow-backend/internal/domain/deal"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies deal.Repository. Fill in the
// function fields a test needs; unfilled ones fail fast.
type Repo struct {
	CreateFn               func(ctx context.Context, d *domain.Deal) error
	GetByDealIDFn          func(ctx context.Context, userID, dealID string) (*domain.Deal, error)
	GetByDealIDForUpdateFn func(ctx context.Context, userID, dealID string) (*domain.Deal, error)
	SaveFn                 func(ctx context.Context, d *domain.Deal) error
	ListFn                 func(ctx context.Context, userID string, f domain.ListFilter) ([]domain.Deal, error)
	ListActiveByUserFn     func(ctx context.Context, userID string) ([]domain.Deal, error)
	AggregateFn            func(ctx context.Context, userID string) (*domain.PipelineAggregate, error)
}

func (m *Repo) Create(ctx context.Context, d *domain.Deal) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDealID(ctx context.Context, userID, dealID string) (*domain.Deal, error) {
	if m.GetByDealIDFn != nil {
		return m.GetByDealIDFn(ctx, userID, dealID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByDealIDForUpdate(ctx context.Context, userID, dealID string) (*domain.Deal, error) {
	if m.GetByDealIDForUpdateFn != nil {
		return m.GetByDealIDForUpdateFn(ctx, userID, dealID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, d *domain.Deal) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, userID string, f domain.ListFilter) ([]domain.Deal, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, userID, f)
	}
	return nil, context.Canceled
}

func (m *Repo) ListActiveByUser(ctx context.Context, userID string) ([]domain.Deal, error) {
	if m.ListActiveByUserFn != nil {
		return m.ListActiveByUserFn(ctx, userID)
	}
	return nil, context.Canceled
}

func (m *Repo) Aggregate(ctx context.Context, userID string) (*domain.PipelineAggregate, error) {
	if m.AggregateFn != nil {
		return m.AggregateFn(ctx, userID)
	}
	return nil, context.Canceled
}
