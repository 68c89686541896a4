package mysql

import (
	"context"

	"dealflow-backend/internal/domain/offer"

	"gorm.io/gorm"
)

type OfferRepository struct{ db *gorm.DB }

func NewOfferRepository(db *gorm.DB) *OfferRepository { return &OfferRepository{db: db} }

func (r *OfferRepository) Create(ctx context.Context, o *offer.Offer) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OfferRepository) Save(ctx context.Context, o *offer.Offer) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OfferRepository) GetByOfferID(ctx context.Context, offerID string) (*offer.Offer, error) {
	var out offer.Offer
	res := r.db.WithContext(ctx).Where("offer_id = ?", offerID).First(&out)
	return &out, res.Error
}

func (r *OfferRepository) ListByDealID(ctx context.Context, dealID uint64) ([]offer.Offer, error) {
	var out []offer.Offer
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("offer_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
