package activitymock

import (
	"context"

	domain "dealflow-backend/internal/domain/activity"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn       func(ctx context.Context, a *domain.Activity) error
	ListByDealIDFn func(ctx context.Context, dealID uint64, limit int) ([]domain.Activity, error)
	SummarizeFn    func(ctx context.Context, dealID uint64) (*domain.Summary, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Activity) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) ListByDealID(ctx context.Context, dealID uint64, limit int) ([]domain.Activity, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID, limit)
	}
	return nil, context.Canceled
}

func (m *Repo) Summarize(ctx context.Context, dealID uint64) (*domain.Summary, error) {
	if m.SummarizeFn != nil {
		return m.SummarizeFn(ctx, dealID)
	}
	return nil, context.Canceled
}
