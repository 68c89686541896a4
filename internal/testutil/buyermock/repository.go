package buyermock

import (
	"context"

	domain "dealflow-backend/internal/domain/buyer"
)

var (
	_ domain.Repository            = (*Repo)(nil)
	_ domain.PreferencesRepository = (*PrefsRepo)(nil)
	_ domain.TransactionRepository = (*TxRepo)(nil)
)

type Repo struct {
	CreateFn       func(ctx context.Context, b *domain.Buyer) error
	GetByBuyerIDFn func(ctx context.Context, userID, buyerID string) (*domain.Buyer, error)
	SaveFn         func(ctx context.Context, b *domain.Buyer) error
	ListByUserFn   func(ctx context.Context, userID string, f domain.CandidateFilter) ([]domain.Buyer, error)
}

func (m *Repo) Create(ctx context.Context, b *domain.Buyer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *Repo) GetByBuyerID(ctx context.Context, userID, buyerID string) (*domain.Buyer, error) {
	if m.GetByBuyerIDFn != nil {
		return m.GetByBuyerIDFn(ctx, userID, buyerID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, b *domain.Buyer) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *Repo) ListByUser(ctx context.Context, userID string, f domain.CandidateFilter) ([]domain.Buyer, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID, f)
	}
	return nil, context.Canceled
}

type PrefsRepo struct {
	UpsertFn       func(ctx context.Context, p *domain.Preferences) error
	GetByBuyerIDFn func(ctx context.Context, buyerID uint64) (*domain.Preferences, error)
	GetForBuyersFn func(ctx context.Context, buyerIDs []uint64) (map[uint64]domain.Preferences, error)
}

func (m *PrefsRepo) Upsert(ctx context.Context, p *domain.Preferences) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, p)
	}
	return nil
}

func (m *PrefsRepo) GetByBuyerID(ctx context.Context, buyerID uint64) (*domain.Preferences, error) {
	if m.GetByBuyerIDFn != nil {
		return m.GetByBuyerIDFn(ctx, buyerID)
	}
	return nil, context.Canceled
}

func (m *PrefsRepo) GetForBuyers(ctx context.Context, buyerIDs []uint64) (map[uint64]domain.Preferences, error) {
	if m.GetForBuyersFn != nil {
		return m.GetForBuyersFn(ctx, buyerIDs)
	}
	return nil, context.Canceled
}

type TxRepo struct {
	CreateFn        func(ctx context.Context, tx *domain.Transaction) error
	ListByBuyerIDFn func(ctx context.Context, buyerID uint64) ([]domain.Transaction, error)
}

func (m *TxRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tx)
	}
	return nil
}

func (m *TxRepo) ListByBuyerID(ctx context.Context, buyerID uint64) ([]domain.Transaction, error) {
	if m.ListByBuyerIDFn != nil {
		return m.ListByBuyerIDFn(ctx, buyerID)
	}
	return nil, context.Canceled
}
