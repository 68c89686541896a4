package mysql

import (
	"context"

	"dealflow-backend/internal/domain/buyer"

	"gorm.io/gorm"
)

type BuyerRepository struct{ db *gorm.DB }

func NewBuyerRepository(db *gorm.DB) *BuyerRepository { return &BuyerRepository{db: db} }

func (r *BuyerRepository) Create(ctx context.Context, b *buyer.Buyer) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BuyerRepository) Save(ctx context.Context, b *buyer.Buyer) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BuyerRepository) GetByBuyerID(ctx context.Context, userID, buyerID string) (*buyer.Buyer, error) {
	var out buyer.Buyer
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND buyer_id = ?", userID, buyerID).
		First(&out)
	return &out, res.Error
}

func (r *BuyerRepository) ListByUser(ctx context.Context, userID string, f buyer.CandidateFilter) ([]buyer.Buyer, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if len(f.Tiers) > 0 {
		q = q.Where("tier IN ?", f.Tiers)
	}
	var out []buyer.Buyer
	res := q.Order("tier ASC, name ASC").Find(&out)
	return out, res.Error
}
