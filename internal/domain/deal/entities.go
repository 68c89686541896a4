package deal

import (
	"time"

	"gorm.io/gorm"
)

type Stage string

const (
	StageLead        Stage = "lead"
	StageContacted   Stage = "contacted"
	StageAppointment Stage = "appointment"
	StageOffer       Stage = "offer"
	StageContract    Stage = "contract"
	StageAssigned    Stage = "assigned"
	StageClosing     Stage = "closing"
	StageClosed      Stage = "closed"
	StageLost        Stage = "lost"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Deal struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	DealID string `gorm:"size:32;uniqueIndex:ux_deals_deal_id_active" json:"deal_id"`
	UserID string `gorm:"size:32;index:idx_deals_user_active" json:"user_id"`

	PropertyID      *string `gorm:"size:32;index" json:"property_id"`
	PropertyAddress string  `gorm:"type:text" json:"property_address"`

	Stage  Stage  `gorm:"type:enum('lead','contacted','appointment','offer','contract','assigned','closing','closed','lost');default:'lead'" json:"stage"`
	Status Status `gorm:"type:enum('active','on_hold','cancelled','completed');default:'active'" json:"status"`

	SellerName  *string `gorm:"size:255" json:"seller_name"`
	SellerPhone *string `gorm:"size:32" json:"seller_phone"`
	SellerEmail *string `gorm:"size:255" json:"seller_email"`

	AskingPrice      *float64 `gorm:"type:decimal(14,2)" json:"asking_price"`
	OfferPrice       *float64 `gorm:"type:decimal(14,2)" json:"offer_price"`
	ContractPrice    *float64 `gorm:"type:decimal(14,2)" json:"contract_price"`
	AssignmentFee    *float64 `gorm:"type:decimal(14,2)" json:"assignment_fee"`
	EstimatedARV     *float64 `gorm:"type:decimal(14,2)" json:"estimated_arv"`
	EstimatedRepairs *float64 `gorm:"type:decimal(14,2)" json:"estimated_repairs"`

	AssignedBuyerID *string `gorm:"size:32;index" json:"assigned_buyer_id"`

	Notes string `gorm:"type:text" json:"notes"`

	// StageUpdatedAt moves only on stage transitions; UpdatedAt moves on any
	// edit, so days-in-stage is derived from the former.
	StageUpdatedAt time.Time      `gorm:"autoCreateTime" json:"stage_updated_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Deal) TableName() string { return "deals" }

// DaysInStage is computed at read time, never stored.
func (d *Deal) DaysInStage(now time.Time) int {
	if d.StageUpdatedAt.IsZero() {
		return 0
	}
	days := int(now.Sub(d.StageUpdatedAt).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
