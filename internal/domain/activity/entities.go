package activity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("activity not found")

type Type string

const (
	TypeCall        Type = "call"
	TypeEmail       Type = "email"
	TypeSMS         Type = "sms"
	TypeNote        Type = "note"
	TypeStageChange Type = "stage_change"
	TypeMeeting     Type = "meeting"
	TypeOther       Type = "other"
)

func ValidType(t Type) bool {
	switch t {
	case TypeCall, TypeEmail, TypeSMS, TypeNote, TypeStageChange, TypeMeeting, TypeOther:
		return true
	}
	return false
}

// Metadata is a small structured payload stored as a JSON column (e.g.
// previous/new stage for a stage_change).
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("activity: unsupported metadata column type")
	}
	return json.Unmarshal(b, m)
}

// Activity is an immutable audit record. Rows are only ever inserted; there
// is no update or delete path.
type Activity struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	ActivityID string `gorm:"size:32;uniqueIndex:ux_deal_activities_activity_id" json:"activity_id"`
	// FK to deals.id (numeric).
	DealID      uint64    `gorm:"column:deal_id;not null;index" json:"-"`
	ActorID     string    `gorm:"size:32;not null" json:"actor_id"`
	Type        Type      `gorm:"column:activity_type;type:enum('call','email','sms','note','stage_change','meeting','other');not null" json:"activity_type"`
	Description string    `gorm:"type:text" json:"description"`
	Metadata    Metadata  `gorm:"type:json" json:"metadata,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Activity) TableName() string { return "deal_activities" }
