package mysql

import (
	"context"
	"testing"
	"time"

	"dealflow-backend/internal/domain/buyer"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type preferencesSQLite struct {
	ID                 uint64    `gorm:"primaryKey;column:id"`
	BuyerID            uint64    `gorm:"column:buyer_id;uniqueIndex"`
	PropertyTypes      *string   `gorm:"type:text;column:property_types"`
	PriceRangeMin      *float64  `gorm:"column:price_range_min"`
	PriceRangeMax      *float64  `gorm:"column:price_range_max"`
	BedroomsMin        *int      `gorm:"column:bedrooms_min"`
	BedroomsMax        *int      `gorm:"column:bedrooms_max"`
	TargetMarkets      *string   `gorm:"type:text;column:target_markets"`
	ConditionTolerance *string   `gorm:"type:text;column:condition_tolerance"`
	MaxRehabBudget     *float64  `gorm:"column:max_rehab_budget"`
	PreferredROI       *float64  `gorm:"column:preferred_roi"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (preferencesSQLite) TableName() string { return "buyer_preferences" }

func openPreferencesTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&preferencesSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func TestPreferencesUpsert(t *testing.T) {
	db := openPreferencesTestDB(t)
	repo := NewPreferencesRepository(db)
	ctx := context.Background()

	p := &buyer.Preferences{
		BuyerID:       42,
		PropertyTypes: buyer.StringList{"single_family"},
		PriceRangeMax: fptr(200_000),
	}
	if err := repo.Upsert(ctx, p); err != nil {
		t.Fatalf("Upsert insert: %v", err)
	}

	// Second upsert for the same buyer replaces, never duplicates.
	p2 := &buyer.Preferences{
		BuyerID:       42,
		PropertyTypes: buyer.StringList{"multi_family", "condo"},
		PriceRangeMax: fptr(350_000),
	}
	if err := repo.Upsert(ctx, p2); err != nil {
		t.Fatalf("Upsert update: %v", err)
	}

	var n int64
	if err := db.Model(&preferencesSQLite{}).Where("buyer_id = ?", 42).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("expected single preference row, got %d", n)
	}

	got, err := repo.GetByBuyerID(ctx, 42)
	if err != nil {
		t.Fatalf("GetByBuyerID: %v", err)
	}
	if len(got.PropertyTypes) != 2 || got.PriceRangeMax == nil || *got.PriceRangeMax != 350_000 {
		t.Errorf("preferences not replaced: %+v", got)
	}
}

func TestPreferencesGetForBuyers(t *testing.T) {
	db := openPreferencesTestDB(t)
	repo := NewPreferencesRepository(db)
	ctx := context.Background()

	for _, bid := range []uint64{1, 2} {
		if err := repo.Upsert(ctx, &buyer.Preferences{BuyerID: bid, PriceRangeMax: fptr(float64(bid) * 100_000)}); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	got, err := repo.GetForBuyers(ctx, []uint64{1, 2, 3})
	if err != nil {
		t.Fatalf("GetForBuyers: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if _, ok := got[3]; ok {
		t.Errorf("buyer 3 should have no preferences")
	}
	p2, ok := got[2]
	if !ok || p2.PriceRangeMax == nil || *p2.PriceRangeMax != 200_000 {
		t.Errorf("unexpected preferences for buyer 2: %+v", p2)
	}

	empty, err := repo.GetForBuyers(ctx, nil)
	if err != nil {
		t.Fatalf("GetForBuyers empty: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map, got %+v", empty)
	}
}
