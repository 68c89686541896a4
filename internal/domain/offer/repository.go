package offer

import "context"

type Repository interface {
	Create(ctx context.Context, o *Offer) error
	GetByOfferID(ctx context.Context, offerID string) (*Offer, error)
	Save(ctx context.Context, o *Offer) error
	ListByDealID(ctx context.Context, dealID uint64) ([]Offer, error)
}
