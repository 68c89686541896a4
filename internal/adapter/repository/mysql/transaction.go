package mysql

import (
	"context"

	"dealflow-backend/internal/domain/buyer"

	"gorm.io/gorm"
)

type TransactionRepository struct{ db *gorm.DB }

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *buyer.Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TransactionRepository) ListByBuyerID(ctx context.Context, buyerID uint64) ([]buyer.Transaction, error) {
	var out []buyer.Transaction
	res := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
