package offer

import (
	"context"
	"errors"
	"fmt"
	"time"

	dealDomain "dealflow-backend/internal/domain/deal"
	domain "dealflow-backend/internal/domain/offer"
	"dealflow-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrOfferFinal = errors.New("offer already in a final status")

// Usecase tracks offer attempts against a deal. An offer's lifecycle is
// independent of the deal's stage.
type Usecase struct {
	deals  dealDomain.Repository
	offers domain.Repository
}

func NewUsecase(deals dealDomain.Repository, offers domain.Repository) *Usecase {
	return &Usecase{deals: deals, offers: offers}
}

type CreateInput struct {
	UserID    string
	DealID    string
	Amount    float64
	OfferDate time.Time
	ExpiresAt *time.Time
}

type UpdateStatusInput struct {
	UserID        string
	DealID        string
	OfferID       string
	Status        domain.Status
	CounterAmount *float64
}

type OfferDTO struct {
	OfferID       string     `json:"offer_id"`
	Amount        float64    `json:"amount"`
	OfferDate     time.Time  `json:"offer_date"`
	ExpiresAt     *time.Time `json:"expires_at"`
	Status        string     `json:"status"`
	CounterAmount *float64   `json:"counter_amount"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*OfferDTO, error) {
	if in.Amount <= 0 {
		return nil, errors.New("offer amount must be positive")
	}
	d, err := u.loadDeal(ctx, in.UserID, in.DealID)
	if err != nil {
		return nil, err
	}
	o := &domain.Offer{
		OfferID:   id.NewID32(),
		DealID:    d.ID,
		Amount:    in.Amount,
		OfferDate: in.OfferDate,
		ExpiresAt: in.ExpiresAt,
		Status:    domain.StatusPending,
	}
	if err := u.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	return toDTO(o), nil
}

func (u *Usecase) List(ctx context.Context, userID, dealID string) ([]OfferDTO, error) {
	d, err := u.loadDeal(ctx, userID, dealID)
	if err != nil {
		return nil, err
	}
	rows, err := u.offers.ListByDealID(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	out := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

// UpdateStatus moves a pending or countered offer to a new status. Final
// statuses (accepted, rejected, expired, withdrawn) are terminal.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*OfferDTO, error) {
	if !domain.ValidStatus(in.Status) {
		return nil, fmt.Errorf("invalid offer status %q", in.Status)
	}
	d, err := u.loadDeal(ctx, in.UserID, in.DealID)
	if err != nil {
		return nil, err
	}
	o, err := u.offers.GetByOfferID(ctx, in.OfferID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	// The offer has to hang off the caller's deal.
	if o.DealID != d.ID {
		return nil, domain.ErrNotFound
	}
	if o.Status != domain.StatusPending && o.Status != domain.StatusCountered {
		return nil, ErrOfferFinal
	}

	o.Status = in.Status
	if in.Status == domain.StatusCountered {
		o.CounterAmount = in.CounterAmount
	}
	if err := u.offers.Save(ctx, o); err != nil {
		return nil, err
	}
	return toDTO(o), nil
}

func (u *Usecase) loadDeal(ctx context.Context, userID, dealID string) (*dealDomain.Deal, error) {
	d, err := u.deals.GetByDealID(ctx, userID, dealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, dealDomain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func toDTO(o *domain.Offer) *OfferDTO {
	return &OfferDTO{
		OfferID:       o.OfferID,
		Amount:        o.Amount,
		OfferDate:     o.OfferDate,
		ExpiresAt:     o.ExpiresAt,
		Status:        string(o.Status),
		CounterAmount: o.CounterAmount,
		CreatedAt:     o.CreatedAt,
	}
}
