package buyer

import "context"

// CandidateFilter restricts matching candidates. Empty fields mean no
// restriction.
type CandidateFilter struct {
	Statuses []Status
	Tiers    []Tier
}

type Repository interface {
	Create(ctx context.Context, b *Buyer) error
	GetByBuyerID(ctx context.Context, userID, buyerID string) (*Buyer, error)
	Save(ctx context.Context, b *Buyer) error
	ListByUser(ctx context.Context, userID string, f CandidateFilter) ([]Buyer, error)
}

type PreferencesRepository interface {
	// Upsert creates or replaces the buyer's single preferences row.
	Upsert(ctx context.Context, p *Preferences) error
	GetByBuyerID(ctx context.Context, buyerID uint64) (*Preferences, error)
	// GetForBuyers fetches preferences for many buyers at once, keyed by
	// the numeric buyer id. Buyers without a row are simply absent.
	GetForBuyers(ctx context.Context, buyerIDs []uint64) (map[uint64]Preferences, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, tx *Transaction) error
	ListByBuyerID(ctx context.Context, buyerID uint64) ([]Transaction, error)
}
