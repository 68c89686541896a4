package buyer

import (
	"time"

	domain "dealflow-backend/internal/domain/buyer"
)

type CreateBuyerInput struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	Company   *string `json:"company"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	BuyerType *string `json:"buyer_type"`
	Notes     string  `json:"notes"`
}

// UpdateBuyerInput: nil fields are left untouched. Status and tier are not
// settable here; status moves through the qualification workflow and tier
// through rescoring.
type UpdateBuyerInput struct {
	Name          *string    `json:"name"`
	Company       *string    `json:"company"`
	Email         *string    `json:"email"`
	Phone         *string    `json:"phone"`
	BuyerType     *string    `json:"buyer_type"`
	Notes         *string    `json:"notes"`
	VerifiedPOF   *bool      `json:"verified_pof"`
	LastContactAt *time.Time `json:"last_contact_at"`
}

type PreferencesInput struct {
	PropertyTypes      []string                   `json:"property_types"`
	PriceRangeMin      *float64                   `json:"price_range_min"`
	PriceRangeMax      *float64                   `json:"price_range_max"`
	BedroomsMin        *int                       `json:"bedrooms_min"`
	BedroomsMax        *int                       `json:"bedrooms_max"`
	TargetMarkets      []string                   `json:"target_markets"`
	ConditionTolerance *domain.ConditionTolerance `json:"condition_tolerance"`
	MaxRehabBudget     *float64                   `json:"max_rehab_budget"`
	PreferredROI       *float64                   `json:"preferred_roi"`
}

type RescoreInput struct {
	ResponseRate *float64 `json:"response_rate"`
	ClosingRate  *float64 `json:"closing_rate"`
}

type BuyerDTO struct {
	BuyerID       string     `json:"buyer_id"`
	UserID        string     `json:"user_id"`
	Name          string     `json:"name"`
	Company       *string    `json:"company"`
	Email         *string    `json:"email"`
	Phone         *string    `json:"phone"`
	BuyerType     *string    `json:"buyer_type"`
	Status        string     `json:"status"`
	QualStage     string     `json:"qualification_stage"`
	Tier          string     `json:"tier"`
	VerifiedPOF   bool       `json:"verified_pof"`
	LastContactAt *time.Time `json:"last_contact_at"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toDTO(b *domain.Buyer) *BuyerDTO {
	return &BuyerDTO{
		BuyerID:       b.BuyerID,
		UserID:        b.UserID,
		Name:          b.Name,
		Company:       b.Company,
		Email:         b.Email,
		Phone:         b.Phone,
		BuyerType:     b.BuyerType,
		Status:        string(b.Status),
		QualStage:     string(b.Qualification()),
		Tier:          string(b.Tier),
		VerifiedPOF:   b.VerifiedPOF,
		LastContactAt: b.LastContactAt,
		Notes:         b.Notes,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
