package matching

import (
	"math"
	"strings"

	domain "dealflow-backend/internal/domain/buyer"
)

// toleranceBudget maps a buyer's rehab tolerance to the largest repair
// estimate they will take on. Gut-rehab buyers accept anything.
var toleranceBudget = map[domain.ConditionTolerance]float64{
	domain.ConditionTurnkey:  5_000,
	domain.ConditionLight:    25_000,
	domain.ConditionModerate: 75_000,
	domain.ConditionHeavy:    150_000,
	domain.ConditionGut:      math.Inf(1),
}

// priceBandRatio: a price within 30% of the nearer bound still earns half
// the price points.
const priceBandRatio = 0.3

// CalculateMatchScore scores one property against one buyer's preferences
// across five independently-capped factors, then normalizes to 0-100 over
// the factor maximums. Pure; a nil prefs yields a flat 50 with a single
// explanatory factor.
func CalculateMatchScore(prefs *domain.Preferences, p PropertySnapshot) (int, []MatchFactor) {
	if prefs == nil {
		return 50, []MatchFactor{{
			Name:     "no_preferences",
			Score:    50,
			MaxScore: 100,
			Reason:   "buyer has no recorded preferences",
		}}
	}

	factors := []MatchFactor{
		priceFactor(prefs, p),
		typeFactor(prefs, p),
		bedroomsFactor(prefs, p),
		conditionFactor(prefs, p),
		roiFactor(prefs, p),
	}

	var sum, max float64
	for _, f := range factors {
		sum += f.Score
		max += f.MaxScore
	}
	score := int(math.Round(sum / max * 100))
	return score, factors
}

func priceFactor(prefs *domain.Preferences, p PropertySnapshot) MatchFactor {
	f := MatchFactor{Name: "price", MaxScore: 30}
	min, max := prefs.PriceRangeMin, prefs.PriceRangeMax
	if min == nil && max == nil {
		f.Score = 30
		f.Reason = "no price preference"
		return f
	}
	if p.AskingPrice == nil {
		f.Score = 15
		f.Reason = "asking price unknown"
		return f
	}
	price := *p.AskingPrice

	inRange := (min == nil || price >= *min) && (max == nil || price <= *max)
	if inRange {
		f.Score = 30
		f.Reason = "price within buyer range"
		return f
	}
	// Within 30% of the nearer bound: half points.
	if min != nil && price < *min && price >= *min*(1-priceBandRatio) {
		f.Score = 15
		f.Reason = "price below range but close"
		return f
	}
	if max != nil && price > *max && price <= *max*(1+priceBandRatio) {
		f.Score = 15
		f.Reason = "price above range but close"
		return f
	}
	f.Reason = "price outside buyer range"
	return f
}

func typeFactor(prefs *domain.Preferences, p PropertySnapshot) MatchFactor {
	f := MatchFactor{Name: "property_type", MaxScore: 20}
	if len(prefs.PropertyTypes) == 0 {
		f.Score = 20
		f.Reason = "no property type preference"
		return f
	}
	if p.PropertyType == nil || *p.PropertyType == "" {
		f.Score = 10
		f.Reason = "property type unknown"
		return f
	}
	for _, t := range prefs.PropertyTypes {
		if strings.EqualFold(t, *p.PropertyType) {
			f.Score = 20
			f.Reason = "property type matches preference"
			return f
		}
	}
	f.Reason = "property type not in buyer list"
	return f
}

func bedroomsFactor(prefs *domain.Preferences, p PropertySnapshot) MatchFactor {
	f := MatchFactor{Name: "bedrooms", MaxScore: 15}
	if prefs.BedroomsMin == nil && prefs.BedroomsMax == nil {
		f.Score = 15
		f.Reason = "no bedroom preference"
		return f
	}
	if p.Bedrooms == nil {
		f.Score = 7.5
		f.Reason = "bedroom count unknown"
		return f
	}
	beds := *p.Bedrooms
	if (prefs.BedroomsMin == nil || beds >= *prefs.BedroomsMin) &&
		(prefs.BedroomsMax == nil || beds <= *prefs.BedroomsMax) {
		f.Score = 15
		f.Reason = "bedrooms within range"
		return f
	}
	f.Reason = "bedrooms outside range"
	return f
}

func conditionFactor(prefs *domain.Preferences, p PropertySnapshot) MatchFactor {
	f := MatchFactor{Name: "condition", MaxScore: 20}
	budget := math.Inf(1)
	bounded := false
	if prefs.ConditionTolerance != nil {
		if b, ok := toleranceBudget[*prefs.ConditionTolerance]; ok {
			budget = b
			bounded = true
		}
	}
	// An explicit rehab budget tightens the tolerance-derived one.
	if prefs.MaxRehabBudget != nil && *prefs.MaxRehabBudget < budget {
		budget = *prefs.MaxRehabBudget
		bounded = true
	}
	if !bounded {
		f.Score = 20
		f.Reason = "no condition tolerance set"
		return f
	}
	if p.EstimatedRepairs == nil {
		f.Score = 10
		f.Reason = "repair estimate unknown"
		return f
	}
	if *p.EstimatedRepairs <= budget {
		f.Score = 20
		f.Reason = "repairs within buyer tolerance"
		return f
	}
	f.Reason = "repairs exceed buyer tolerance"
	return f
}

func roiFactor(prefs *domain.Preferences, p PropertySnapshot) MatchFactor {
	f := MatchFactor{Name: "roi", MaxScore: 15}
	if prefs.PreferredROI == nil {
		f.Score = 15
		f.Reason = "no ROI target"
		return f
	}
	if p.EstimatedARV == nil || p.AskingPrice == nil {
		f.Score = 15
		f.Reason = "inputs missing for ROI"
		return f
	}
	repairs := 0.0
	if p.EstimatedRepairs != nil {
		repairs = *p.EstimatedRepairs
	}
	cost := *p.AskingPrice + repairs
	if cost <= 0 {
		f.Score = 15
		f.Reason = "inputs missing for ROI"
		return f
	}
	roi := (*p.EstimatedARV - cost) / cost * 100
	target := *prefs.PreferredROI
	switch {
	case roi >= target:
		f.Score = 15
		f.Reason = "ROI meets buyer target"
	case roi >= target*0.7:
		f.Score = 7.5
		f.Reason = "ROI close to buyer target"
	default:
		f.Reason = "ROI below buyer target"
	}
	return f
}
