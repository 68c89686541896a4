package mysql

import (
	"context"

	"dealflow-backend/internal/domain/buyer"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PreferencesRepository struct{ db *gorm.DB }

func NewPreferencesRepository(db *gorm.DB) *PreferencesRepository {
	return &PreferencesRepository{db: db}
}

// Upsert keeps one preference row per buyer, replacing the criteria columns
// when the buyer already has one.
func (r *PreferencesRepository) Upsert(ctx context.Context, p *buyer.Preferences) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "buyer_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"property_types", "price_range_min", "price_range_max",
				"bedrooms_min", "bedrooms_max", "target_markets",
				"condition_tolerance", "max_rehab_budget", "preferred_roi",
				"updated_at",
			}),
		}).
		Create(p).Error
}

func (r *PreferencesRepository) GetByBuyerID(ctx context.Context, buyerID uint64) (*buyer.Preferences, error) {
	var out buyer.Preferences
	res := r.db.WithContext(ctx).Where("buyer_id = ?", buyerID).First(&out)
	return &out, res.Error
}

func (r *PreferencesRepository) GetForBuyers(ctx context.Context, buyerIDs []uint64) (map[uint64]buyer.Preferences, error) {
	out := make(map[uint64]buyer.Preferences, len(buyerIDs))
	if len(buyerIDs) == 0 {
		return out, nil
	}
	var rows []buyer.Preferences
	res := r.db.WithContext(ctx).Where("buyer_id IN ?", buyerIDs).Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	for _, row := range rows {
		out[row.BuyerID] = row
	}
	return out, nil
}
