package buyer

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Tier string

const (
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
)

type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusQualified   Status = "qualified"
	StatusUnqualified Status = "unqualified"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusQualified, StatusUnqualified:
		return true
	}
	return false
}

// StringList is stored as a JSON array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("buyer: unsupported list column type")
	}
	return json.Unmarshal(b, l)
}

type Buyer struct {
	ID      uint64 `gorm:"primaryKey;column:id" json:"-"`
	BuyerID string `gorm:"size:32;uniqueIndex:ux_buyers_buyer_id_active" json:"buyer_id"`
	UserID  string `gorm:"size:32;index:idx_buyers_user_active" json:"user_id"`

	Name      string  `gorm:"size:255;not null" json:"name"`
	Company   *string `gorm:"size:255" json:"company"`
	Email     *string `gorm:"size:255" json:"email"`
	Phone     *string `gorm:"size:32" json:"phone"`
	BuyerType *string `gorm:"size:64" json:"buyer_type"`

	Status Status `gorm:"type:enum('active','inactive','qualified','unqualified');default:'inactive'" json:"status"`
	// QualStage is the buyer's position in the qualification workflow. Status
	// is derived from it on every advance; it is stored separately because
	// three stages collapse onto the active status.
	QualStage QualificationStage `gorm:"column:qual_stage;type:enum('new','contacted','pof_received','verified','qualified');default:'new'" json:"qualification_stage"`
	// Tier is derived by the scoring engine, never set by callers.
	Tier Tier `gorm:"type:enum('A','B','C');default:'C'" json:"tier"`

	VerifiedPOF   bool       `gorm:"column:verified_pof;default:false" json:"verified_pof"`
	LastContactAt *time.Time `json:"last_contact_at"`

	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Buyer) TableName() string { return "buyers" }

type ConditionTolerance string

const (
	ConditionTurnkey  ConditionTolerance = "turnkey"
	ConditionLight    ConditionTolerance = "light"
	ConditionModerate ConditionTolerance = "moderate"
	ConditionHeavy    ConditionTolerance = "heavy"
	ConditionGut      ConditionTolerance = "gut"
)

// Preferences is one-to-one with Buyer and consumed only by the matching
// engine.
type Preferences struct {
	ID uint64 `gorm:"primaryKey;column:id" json:"-"`
	// FK to buyers.id (numeric), one row per buyer.
	BuyerID uint64 `gorm:"column:buyer_id;not null;uniqueIndex:ux_buyer_preferences_buyer" json:"-"`

	PropertyTypes StringList `gorm:"type:json" json:"property_types"`
	PriceRangeMin *float64   `gorm:"type:decimal(14,2)" json:"price_range_min"`
	PriceRangeMax *float64   `gorm:"type:decimal(14,2)" json:"price_range_max"`
	BedroomsMin   *int       `json:"bedrooms_min"`
	BedroomsMax   *int       `json:"bedrooms_max"`
	TargetMarkets StringList `gorm:"type:json" json:"target_markets"`

	ConditionTolerance *ConditionTolerance `gorm:"type:enum('turnkey','light','moderate','heavy','gut')" json:"condition_tolerance"`
	MaxRehabBudget     *float64            `gorm:"type:decimal(14,2)" json:"max_rehab_budget"`
	PreferredROI       *float64            `gorm:"type:decimal(6,2)" json:"preferred_roi"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Preferences) TableName() string { return "buyer_preferences" }

type TransactionType string

const (
	TransactionPurchase TransactionType = "purchase"
	TransactionSale     TransactionType = "sale"
)

// Transaction is a historical purchase/sale record for a buyer.
type Transaction struct {
	ID            uint64 `gorm:"primaryKey;column:id" json:"-"`
	TransactionID string `gorm:"size:32;uniqueIndex:ux_buyer_transactions_tx_id" json:"transaction_id"`
	// FK to buyers.id (numeric).
	BuyerID uint64 `gorm:"column:buyer_id;not null;index" json:"-"`

	PropertyAddress string          `gorm:"type:text" json:"property_address"`
	Type            TransactionType `gorm:"column:transaction_type;type:enum('purchase','sale');default:'purchase'" json:"transaction_type"`
	PurchasePrice   *float64        `gorm:"type:decimal(14,2)" json:"purchase_price"`
	PurchaseDate    *time.Time      `gorm:"type:date" json:"purchase_date"`
	SalePrice       *float64        `gorm:"type:decimal(14,2)" json:"sale_price"`
	SaleDate        *time.Time      `gorm:"type:date" json:"sale_date"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Transaction) TableName() string { return "buyer_transactions" }

// TransactionAnalysis summarizes a buyer's transaction history for the
// scoring engine. DaysSinceLast is nil when the buyer has no dated
// transactions.
type TransactionAnalysis struct {
	Count            int        `json:"count"`
	AvgPurchasePrice float64    `json:"avg_purchase_price"`
	FirstDate        *time.Time `json:"first_date"`
	LastDate         *time.Time `json:"last_date"`
	DaysSinceLast    *int       `json:"days_since_last"`
	PerYear          float64    `json:"per_year"`
}
