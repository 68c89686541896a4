package mysql

import (
	"context"

	"dealflow-backend/internal/domain/deal"
	"dealflow-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Deals:        NewDealRepository(tx),
		Activities:   NewActivityRepository(tx),
		Offers:       NewOfferRepository(tx),
		Buyers:       NewBuyerRepository(tx),
		Preferences:  NewPreferencesRepository(tx),
		Transactions: NewTransactionRepository(tx),
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinDealTx(ctx context.Context, userID, dealID string, fn func(r uow.Repos, d *deal.Deal) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := reposFor(tx)
		d, err := repos.Deals.GetByDealIDForUpdate(ctx, userID, dealID)
		if err != nil {
			return err
		}
		return fn(repos, d)
	})
}
