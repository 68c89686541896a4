package matching

import (
	domain "dealflow-backend/internal/domain/buyer"
)

// PropertySnapshot is the matching engine's input. It is never persisted;
// callers assemble it from a deal or an ad-hoc property. Nil fields mean the
// value is unknown.
type PropertySnapshot struct {
	PropertyID       *string  `json:"property_id"`
	Address          string   `json:"address"`
	PropertyType     *string  `json:"property_type"`
	Bedrooms         *int     `json:"bedrooms"`
	AskingPrice      *float64 `json:"asking_price"`
	EstimatedARV     *float64 `json:"estimated_arv"`
	EstimatedRepairs *float64 `json:"estimated_repairs"`
}

// Criteria tunes candidate selection and result shaping. Zero values fall
// back to the defaults.
type Criteria struct {
	Statuses      []domain.Status `json:"statuses"`
	Tiers         []domain.Tier   `json:"tiers"`
	MinMatchScore *int            `json:"min_match_score"` // default 50
	MaxResults    *int            `json:"max_results"`     // default 20
}

const (
	defaultMinMatchScore = 50
	defaultMaxResults    = 20
)

// MatchFactor is one weighted sub-score of a buyer/property match.
type MatchFactor struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Reason   string  `json:"reason"`
}

// BuyerMatchResult pairs a buyer with its overall 0-100 score. Ephemeral,
// computed per request.
type BuyerMatchResult struct {
	BuyerID   string        `json:"buyer_id"`
	BuyerName string        `json:"buyer_name"`
	Tier      string        `json:"tier"`
	Score     int           `json:"score"`
	Factors   []MatchFactor `json:"factors"`
}
