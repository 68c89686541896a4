package offermock

import (
	"context"

	domain "dealflow-backend/internal/domain/offer"
)

// Ensure compile-time compliance
var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies offer.Repository.
type Repo struct {
	CreateFn       func(ctx context.Context, o *domain.Offer) error
	GetByOfferIDFn func(ctx context.Context, offerID string) (*domain.Offer, error)
	SaveFn         func(ctx context.Context, o *domain.Offer) error
	ListByDealIDFn func(ctx context.Context, dealID uint64) ([]domain.Offer, error)
}

func (m *Repo) Create(ctx context.Context, o *domain.Offer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, o)
	}
	return nil
}

func (m *Repo) GetByOfferID(ctx context.Context, offerID string) (*domain.Offer, error) {
	if m.GetByOfferIDFn != nil {
		return m.GetByOfferIDFn(ctx, offerID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, o *domain.Offer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, o)
	}
	return nil
}

func (m *Repo) ListByDealID(ctx context.Context, dealID uint64) ([]domain.Offer, error) {
	if m.ListByDealIDFn != nil {
		return m.ListByDealIDFn(ctx, dealID)
	}
	return nil, context.Canceled
}
