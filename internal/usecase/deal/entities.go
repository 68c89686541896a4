package deal

import (
	"time"

	domain "dealflow-backend/internal/domain/deal"
)

type CreateDealInput struct {
	UserID           string   `json:"user_id"`
	PropertyID       *string  `json:"property_id"`
	PropertyAddress  string   `json:"property_address"`
	SellerName       *string  `json:"seller_name"`
	SellerPhone      *string  `json:"seller_phone"`
	SellerEmail      *string  `json:"seller_email"`
	AskingPrice      *float64 `json:"asking_price"`
	EstimatedARV     *float64 `json:"estimated_arv"`
	EstimatedRepairs *float64 `json:"estimated_repairs"`
	Notes            string   `json:"notes"`
}

// UpdateDealInput: nil fields are left untouched. A non-nil Stage triggers
// the transition flow.
type UpdateDealInput struct {
	Stage            *domain.Stage  `json:"stage"`
	Status           *domain.Status `json:"status"`
	PropertyID       *string        `json:"property_id"`
	PropertyAddress  *string        `json:"property_address"`
	SellerName       *string        `json:"seller_name"`
	SellerPhone      *string        `json:"seller_phone"`
	SellerEmail      *string        `json:"seller_email"`
	AskingPrice      *float64       `json:"asking_price"`
	OfferPrice       *float64       `json:"offer_price"`
	ContractPrice    *float64       `json:"contract_price"`
	AssignmentFee    *float64       `json:"assignment_fee"`
	EstimatedARV     *float64       `json:"estimated_arv"`
	EstimatedRepairs *float64       `json:"estimated_repairs"`
	AssignedBuyerID  *string        `json:"assigned_buyer_id"`
	Notes            *string        `json:"notes"`
}

type DealDTO struct {
	DealID           string   `json:"deal_id"`
	UserID           string   `json:"user_id"`
	PropertyID       *string  `json:"property_id"`
	PropertyAddress  string   `json:"property_address"`
	Stage            string   `json:"stage"`
	Status           string   `json:"status"`
	SellerName       *string  `json:"seller_name"`
	SellerPhone      *string  `json:"seller_phone"`
	SellerEmail      *string  `json:"seller_email"`
	AskingPrice      *float64 `json:"asking_price"`
	OfferPrice       *float64 `json:"offer_price"`
	ContractPrice    *float64 `json:"contract_price"`
	AssignmentFee    *float64 `json:"assignment_fee"`
	EstimatedARV     *float64 `json:"estimated_arv"`
	EstimatedRepairs *float64 `json:"estimated_repairs"`
	AssignedBuyerID  *string  `json:"assigned_buyer_id"`
	// AssignedBuyerName is denormalized at read time.
	AssignedBuyerName *string   `json:"assigned_buyer_name,omitempty"`
	Notes             string    `json:"notes"`
	DaysInStage       int       `json:"days_in_stage"`
	StageUpdatedAt    time.Time `json:"stage_updated_at"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type StageBucket struct {
	Stage domain.Stage `json:"stage"`
	Label string       `json:"label"`
	Deals []DealDTO    `json:"deals"`
}

type PipelineStats struct {
	CountsByStage  map[domain.Stage]int64 `json:"counts_by_stage"`
	TotalDeals     int64                  `json:"total_deals"`
	PipelineValue  float64                `json:"pipeline_value"`
	ClosedValue    float64                `json:"closed_value"`
	AvgDaysToClose float64                `json:"avg_days_to_close"`
}
