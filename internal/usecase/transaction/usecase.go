package transaction

import (
	"context"
	"errors"
	"time"

	domain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase records buyer purchase/sale history and summarizes it for the
// scoring engine.
type Usecase struct {
	buyers domain.Repository
	txs    domain.TransactionRepository
}

func NewUsecase(buyers domain.Repository, txs domain.TransactionRepository) *Usecase {
	return &Usecase{buyers: buyers, txs: txs}
}

type AddInput struct {
	UserID          string                 `json:"user_id"`
	BuyerID         string                 `json:"buyer_id"`
	PropertyAddress string                 `json:"property_address"`
	Type            domain.TransactionType `json:"transaction_type"`
	PurchasePrice   *float64               `json:"purchase_price"`
	PurchaseDate    *time.Time             `json:"purchase_date"`
	SalePrice       *float64               `json:"sale_price"`
	SaleDate        *time.Time             `json:"sale_date"`
}

type TransactionDTO struct {
	TransactionID   string     `json:"transaction_id"`
	PropertyAddress string     `json:"property_address"`
	Type            string     `json:"transaction_type"`
	PurchasePrice   *float64   `json:"purchase_price"`
	PurchaseDate    *time.Time `json:"purchase_date"`
	SalePrice       *float64   `json:"sale_price"`
	SaleDate        *time.Time `json:"sale_date"`
	CreatedAt       time.Time  `json:"created_at"`
}

func (u *Usecase) Add(ctx context.Context, in AddInput) (*TransactionDTO, error) {
	if in.Type != domain.TransactionPurchase && in.Type != domain.TransactionSale {
		return nil, errors.New("invalid transaction type")
	}
	b, err := u.loadBuyer(ctx, in.UserID, in.BuyerID)
	if err != nil {
		return nil, err
	}
	tx := &domain.Transaction{
		TransactionID:   id.NewID32(),
		BuyerID:         b.ID,
		PropertyAddress: in.PropertyAddress,
		Type:            in.Type,
		PurchasePrice:   in.PurchasePrice,
		PurchaseDate:    in.PurchaseDate,
		SalePrice:       in.SalePrice,
		SaleDate:        in.SaleDate,
	}
	if err := u.txs.Create(ctx, tx); err != nil {
		return nil, err
	}
	return toDTO(tx), nil
}

func (u *Usecase) List(ctx context.Context, userID, buyerID string) ([]TransactionDTO, error) {
	b, err := u.loadBuyer(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	txs, err := u.txs.ListByBuyerID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	out := make([]TransactionDTO, 0, len(txs))
	for i := range txs {
		out = append(out, *toDTO(&txs[i]))
	}
	return out, nil
}

// Analyze summarizes the buyer's history for scoring.
func (u *Usecase) Analyze(ctx context.Context, userID, buyerID string) (*domain.TransactionAnalysis, error) {
	b, err := u.loadBuyer(ctx, userID, buyerID)
	if err != nil {
		return nil, err
	}
	txs, err := u.txs.ListByBuyerID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return domain.AnalyzeTransactions(txs, time.Now().UTC()), nil
}

func (u *Usecase) loadBuyer(ctx context.Context, userID, buyerID string) (*domain.Buyer, error) {
	b, err := u.buyers.GetByBuyerID(ctx, userID, buyerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func toDTO(tx *domain.Transaction) *TransactionDTO {
	return &TransactionDTO{
		TransactionID:   tx.TransactionID,
		PropertyAddress: tx.PropertyAddress,
		Type:            string(tx.Type),
		PurchasePrice:   tx.PurchasePrice,
		PurchaseDate:    tx.PurchaseDate,
		SalePrice:       tx.SalePrice,
		SaleDate:        tx.SaleDate,
		CreatedAt:       tx.CreatedAt,
	}
}
