package uow

import (
	"context"

	"dealflow-backend/internal/domain/activity"
	"dealflow-backend/internal/domain/buyer"
	"dealflow-backend/internal/domain/deal"
	"dealflow-backend/internal/domain/offer"
)

type Repos struct {
	Deals        deal.Repository
	Activities   activity.Repository
	Offers       offer.Repository
	Buyers       buyer.Repository
	Preferences  buyer.PreferencesRepository
	Transactions buyer.TransactionRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the deal row first, then pass it in
	WithinDealTx(ctx context.Context, userID, dealID string, fn func(r Repos, d *deal.Deal) error) error
}
