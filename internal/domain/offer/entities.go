package offer

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("offer not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCountered Status = "countered"
	StatusExpired   Status = "expired"
	StatusWithdrawn Status = "withdrawn"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected, StatusCountered, StatusExpired, StatusWithdrawn:
		return true
	}
	return false
}

// Offer is a discrete offer attempt against a deal. Its lifecycle is
// independent of the deal's stage; by convention one is created when the
// deal enters the offer stage, but nothing enforces that.
type Offer struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	OfferID string `gorm:"size:32;uniqueIndex:ux_offers_offer_id" json:"offer_id"`
	// FK to deals.id (numeric).
	DealID        uint64         `gorm:"column:deal_id;not null;index" json:"-"`
	Amount        float64        `gorm:"type:decimal(14,2);not null" json:"amount"`
	OfferDate     time.Time      `gorm:"type:date;not null" json:"offer_date"`
	ExpiresAt     *time.Time     `gorm:"type:date" json:"expires_at"`
	Status        Status         `gorm:"type:enum('pending','accepted','rejected','countered','expired','withdrawn');default:'pending'" json:"status"`
	CounterAmount *float64       `gorm:"type:decimal(14,2)" json:"counter_amount"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Offer) TableName() string { return "offers" }
