package activity

import (
	"context"
	"time"
)

// TypeCount is one row of the store-side summary aggregate.
type TypeCount struct {
	Type  Type  `gorm:"column:activity_type"`
	Count int64 `gorm:"column:count"`
}

type Summary struct {
	Total        int64
	ByType       map[Type]int64
	LastActivity *time.Time
}

type Repository interface {
	Create(ctx context.Context, a *Activity) error
	// ListByDealID returns newest first; ties on created_at break by id so
	// the order is stable.
	ListByDealID(ctx context.Context, dealID uint64, limit int) ([]Activity, error)
	// Summarize aggregates in the store (GROUP BY activity_type plus
	// MAX(created_at)) rather than folding rows client-side.
	Summarize(ctx context.Context, dealID uint64) (*Summary, error)
}
