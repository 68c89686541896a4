package matching

import (
	"context"
	"testing"

	domain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/internal/testutil/buyermock"
)

const testUserID = "11111111111111111111111111111111"

func candidate(id uint64, name string, tier domain.Tier) domain.Buyer {
	return domain.Buyer{ID: id, BuyerID: name + "-id", UserID: testUserID, Name: name, Tier: tier, Status: domain.StatusActive}
}

func TestMatch_DefaultsToActiveAndQualified(t *testing.T) {
	var gotFilter domain.CandidateFilter
	buyers := &buyermock.Repo{
		ListByUserFn: func(ctx context.Context, userID string, f domain.CandidateFilter) ([]domain.Buyer, error) {
			gotFilter = f
			return nil, nil
		},
	}
	uc := NewUsecase(buyers, &buyermock.PrefsRepo{})

	out, err := uc.MatchBuyersToProperty(context.Background(), testUserID, fullProperty(), Criteria{})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("out: %+v", out)
	}
	if len(gotFilter.Statuses) != 2 ||
		gotFilter.Statuses[0] != domain.StatusActive ||
		gotFilter.Statuses[1] != domain.StatusQualified {
		t.Fatalf("filter: %+v", gotFilter)
	}
}

func TestMatch_RanksFiltersAndTruncates(t *testing.T) {
	buyers := &buyermock.Repo{
		ListByUserFn: func(ctx context.Context, userID string, f domain.CandidateFilter) ([]domain.Buyer, error) {
			return []domain.Buyer{
				candidate(1, "perfect-fit", domain.TierA),
				candidate(2, "no-prefs", domain.TierB),
				candidate(3, "bad-fit", domain.TierC),
			}, nil
		},
	}
	prefs := &buyermock.PrefsRepo{
		GetForBuyersFn: func(ctx context.Context, ids []uint64) (map[uint64]domain.Preferences, error) {
			return map[uint64]domain.Preferences{
				// matches fullProperty on every constrained factor
				1: {
					PropertyTypes: domain.StringList{"single_family"},
					PriceRangeMin: f64p(150_000),
					PriceRangeMax: f64p(250_000),
				},
				// hard mismatch on price and type
				3: {
					PropertyTypes: domain.StringList{"land"},
					PriceRangeMax: f64p(50_000),
					PreferredROI:  f64p(90),
				},
			}, nil
		},
	}
	uc := NewUsecase(buyers, prefs)

	out, err := uc.MatchBuyersToProperty(context.Background(), testUserID, fullProperty(), Criteria{})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	// bad-fit lands under the default minimum of 50 and is dropped.
	if len(out) != 2 {
		t.Fatalf("results: %+v", out)
	}
	if out[0].BuyerName != "perfect-fit" || out[0].Score != 100 {
		t.Fatalf("first: %+v", out[0])
	}
	if out[1].BuyerName != "no-prefs" || out[1].Score != 50 {
		t.Fatalf("second: %+v", out[1])
	}

	// A tighter minimum drops the flat-50 buyer too.
	min := 60
	out, err = uc.MatchBuyersToProperty(context.Background(), testUserID, fullProperty(), Criteria{MinMatchScore: &min})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(out) != 1 || out[0].BuyerName != "perfect-fit" {
		t.Fatalf("results: %+v", out)
	}

	// MaxResults truncates after sorting.
	zero := 0
	one := 1
	out, err = uc.MatchBuyersToProperty(context.Background(), testUserID, fullProperty(), Criteria{MinMatchScore: &zero, MaxResults: &one})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(out) != 1 || out[0].BuyerName != "perfect-fit" {
		t.Fatalf("results: %+v", out)
	}
}

func TestMatch_TieBreaksByName(t *testing.T) {
	buyers := &buyermock.Repo{
		ListByUserFn: func(ctx context.Context, userID string, f domain.CandidateFilter) ([]domain.Buyer, error) {
			return []domain.Buyer{
				candidate(1, "zeta", domain.TierB),
				candidate(2, "alpha", domain.TierB),
			}, nil
		},
	}
	prefs := &buyermock.PrefsRepo{
		GetForBuyersFn: func(ctx context.Context, ids []uint64) (map[uint64]domain.Preferences, error) {
			return map[uint64]domain.Preferences{}, nil
		},
	}
	uc := NewUsecase(buyers, prefs)

	zero := 0
	out, err := uc.MatchBuyersToProperty(context.Background(), testUserID, PropertySnapshot{}, Criteria{MinMatchScore: &zero})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(out) != 2 || out[0].BuyerName != "alpha" || out[1].BuyerName != "zeta" {
		t.Fatalf("results: %+v", out)
	}
}
