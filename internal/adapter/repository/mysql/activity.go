package mysql

import (
	"context"

	"dealflow-backend/internal/domain/activity"

	"gorm.io/gorm"
)

const defaultActivityLimit = 100

type ActivityRepository struct{ db *gorm.DB }

func NewActivityRepository(db *gorm.DB) *ActivityRepository { return &ActivityRepository{db: db} }

func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ActivityRepository) ListByDealID(ctx context.Context, dealID uint64, limit int) ([]activity.Activity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	var out []activity.Activity
	res := r.db.WithContext(ctx).
		Where("deal_id = ?", dealID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out)
	return out, res.Error
}

func (r *ActivityRepository) Summarize(ctx context.Context, dealID uint64) (*activity.Summary, error) {
	sum := &activity.Summary{}

	var rows []activity.TypeCount
	err := r.db.WithContext(ctx).Model(&activity.Activity{}).
		Select("activity_type, COUNT(*) AS count").
		Where("deal_id = ?", dealID).
		Group("activity_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	sum.ByType = make(map[activity.Type]int64, len(rows))
	for _, tc := range rows {
		sum.ByType[tc.Type] = tc.Count
		sum.Total += tc.Count
	}

	if sum.Total > 0 {
		var newest activity.Activity
		err = r.db.WithContext(ctx).
			Where("deal_id = ?", dealID).
			Order("created_at DESC, id DESC").
			First(&newest).Error
		if err != nil {
			return nil, err
		}
		t := newest.CreatedAt
		sum.LastActivity = &t
	}

	return sum, nil
}
