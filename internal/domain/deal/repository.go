package deal

import "context"

// ListFilter narrows a user's deal listing. Nil/zero fields are ignored.
type ListFilter struct {
	Stage           *Stage
	Status          *Status
	AssignedBuyerID *string
	// Search matches a substring of the property address or seller name.
	Search   string
	PriceMin *float64
	PriceMax *float64
	Limit    int
	Offset   int
}

type StageCount struct {
	Stage Stage `gorm:"column:stage"`
	Count int64 `gorm:"column:count"`
}

// PipelineAggregate is computed store-side, never persisted.
type PipelineAggregate struct {
	StageCounts    []StageCount
	PipelineValue  float64
	ClosedValue    float64
	AvgDaysToClose float64
}

type Repository interface {
	Create(ctx context.Context, d *Deal) error
	// GetByDealID scopes to the owning user; a deal owned by someone else is
	// indistinguishable from a missing one.
	GetByDealID(ctx context.Context, userID, dealID string) (*Deal, error)
	// GetByDealIDForUpdate takes a row lock for the duration of the
	// surrounding transaction.
	GetByDealIDForUpdate(ctx context.Context, userID, dealID string) (*Deal, error)
	Save(ctx context.Context, d *Deal) error
	List(ctx context.Context, userID string, f ListFilter) ([]Deal, error)
	ListActiveByUser(ctx context.Context, userID string) ([]Deal, error)
	Aggregate(ctx context.Context, userID string) (*PipelineAggregate, error)
}
