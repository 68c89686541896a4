package matching

import (
	"context"
	"sort"

	domain "dealflow-backend/internal/domain/buyer"
)

type Usecase struct {
	buyers domain.Repository
	prefs  domain.PreferencesRepository
}

func NewUsecase(buyers domain.Repository, prefs domain.PreferencesRepository) *Usecase {
	return &Usecase{buyers: buyers, prefs: prefs}
}

// MatchBuyersToProperty scores the property against every candidate buyer,
// drops matches below the minimum score, and returns the strongest first.
// Candidates default to active and qualified buyers when no status filter is
// given.
func (u *Usecase) MatchBuyersToProperty(ctx context.Context, userID string, p PropertySnapshot, c Criteria) ([]BuyerMatchResult, error) {
	filter := domain.CandidateFilter{Statuses: c.Statuses, Tiers: c.Tiers}
	if len(filter.Statuses) == 0 {
		filter.Statuses = []domain.Status{domain.StatusActive, domain.StatusQualified}
	}

	buyers, err := u.buyers.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	if len(buyers) == 0 {
		return []BuyerMatchResult{}, nil
	}

	ids := make([]uint64, 0, len(buyers))
	for i := range buyers {
		ids = append(ids, buyers[i].ID)
	}
	prefsByBuyer, err := u.prefs.GetForBuyers(ctx, ids)
	if err != nil {
		return nil, err
	}

	minScore := defaultMinMatchScore
	if c.MinMatchScore != nil {
		minScore = *c.MinMatchScore
	}
	maxResults := defaultMaxResults
	if c.MaxResults != nil && *c.MaxResults > 0 {
		maxResults = *c.MaxResults
	}

	results := make([]BuyerMatchResult, 0, len(buyers))
	for i := range buyers {
		b := &buyers[i]
		var prefs *domain.Preferences
		if pr, ok := prefsByBuyer[b.ID]; ok {
			prefs = &pr
		}
		score, factors := CalculateMatchScore(prefs, p)
		if score < minScore {
			continue
		}
		results = append(results, BuyerMatchResult{
			BuyerID:   b.BuyerID,
			BuyerName: b.Name,
			Tier:      string(b.Tier),
			Score:     score,
			Factors:   factors,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].BuyerName < results[j].BuyerName
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
