package mysql

import (
	"context"
	"database/sql"
	"time"

	dealDomain "dealflow-backend/internal/domain/deal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const defaultListLimit = 50

type DealRepository struct{ db *gorm.DB }

func NewDealRepository(db *gorm.DB) *DealRepository { return &DealRepository{db: db} }

func (r *DealRepository) Create(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DealRepository) Save(ctx context.Context, d *dealDomain.Deal) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *DealRepository) GetByDealID(ctx context.Context, userID, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND deal_id = ?", userID, dealID).
		First(&out)
	return &out, res.Error
}

// GetByDealIDForUpdate holds a row lock until the surrounding transaction
// ends; call it only from inside one.
func (r *DealRepository) GetByDealIDForUpdate(ctx context.Context, userID, dealID string) (*dealDomain.Deal, error) {
	var out dealDomain.Deal
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND deal_id = ?", userID, dealID).
		First(&out)
	return &out, res.Error
}

func (r *DealRepository) List(ctx context.Context, userID string, f dealDomain.ListFilter) ([]dealDomain.Deal, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if f.Stage != nil {
		q = q.Where("stage = ?", *f.Stage)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.AssignedBuyerID != nil {
		q = q.Where("assigned_buyer_id = ?", *f.AssignedBuyerID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("property_address LIKE ? OR seller_name LIKE ?", like, like)
	}
	if f.PriceMin != nil {
		q = q.Where("asking_price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("asking_price <= ?", *f.PriceMax)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	var out []dealDomain.Deal
	res := q.Order("updated_at DESC, id DESC").Limit(limit).Offset(f.Offset).Find(&out)
	return out, res.Error
}

func (r *DealRepository) ListActiveByUser(ctx context.Context, userID string) ([]dealDomain.Deal, error) {
	var out []dealDomain.Deal
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, dealDomain.StatusActive).
		Order("stage_updated_at ASC, id ASC").
		Find(&out)
	return out, res.Error
}

// Aggregate computes the pipeline stats store-side where the SQL is
// portable, and folds only the closed deals' timestamps in process for the
// average days-to-close.
func (r *DealRepository) Aggregate(ctx context.Context, userID string) (*dealDomain.PipelineAggregate, error) {
	agg := &dealDomain.PipelineAggregate{}

	err := r.db.WithContext(ctx).Model(&dealDomain.Deal{}).
		Select("stage, COUNT(*) AS count").
		Where("user_id = ?", userID).
		Group("stage").
		Scan(&agg.StageCounts).Error
	if err != nil {
		return nil, err
	}

	pipelineStages := []dealDomain.Stage{
		dealDomain.StageContract, dealDomain.StageAssigned, dealDomain.StageClosing,
	}
	var pipeline sql.NullFloat64
	err = r.db.WithContext(ctx).Model(&dealDomain.Deal{}).
		Select("SUM(COALESCE(contract_price, 0) + COALESCE(assignment_fee, 0))").
		Where("user_id = ? AND stage IN ?", userID, pipelineStages).
		Scan(&pipeline).Error
	if err != nil {
		return nil, err
	}
	agg.PipelineValue = pipeline.Float64

	var closed sql.NullFloat64
	err = r.db.WithContext(ctx).Model(&dealDomain.Deal{}).
		Select("SUM(COALESCE(contract_price, 0) + COALESCE(assignment_fee, 0))").
		Where("user_id = ? AND stage = ?", userID, dealDomain.StageClosed).
		Scan(&closed).Error
	if err != nil {
		return nil, err
	}
	agg.ClosedValue = closed.Float64

	var closedRows []struct {
		CreatedAt      time.Time
		StageUpdatedAt time.Time
	}
	err = r.db.WithContext(ctx).Model(&dealDomain.Deal{}).
		Select("created_at, stage_updated_at").
		Where("user_id = ? AND stage = ?", userID, dealDomain.StageClosed).
		Scan(&closedRows).Error
	if err != nil {
		return nil, err
	}
	if len(closedRows) > 0 {
		var total float64
		for _, row := range closedRows {
			total += row.StageUpdatedAt.Sub(row.CreatedAt).Hours() / 24
		}
		agg.AvgDaysToClose = total / float64(len(closedRows))
	}

	return agg, nil
}
