package buyer

import "math"

// ScoreFactor is one weighted sub-score with a human-readable reason.
type ScoreFactor struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Reason   string  `json:"reason"`
}

// ScoreInput carries the optional signals feeding the score. Nil fields
// simply contribute zero for their factor.
type ScoreInput struct {
	Analysis       *TransactionAnalysis
	ResponseRate   *float64 // 0-100
	ClosingRate    *float64 // 0-100
	VerifiedPOF    bool
	HasPreferences bool
}

type ScoreResult struct {
	Score           int           `json:"score"`
	Tier            Tier          `json:"tier"`
	Factors         []ScoreFactor `json:"factors"`
	Recommendations []string      `json:"recommendations"`
}

const maxRecommendations = 3

// CalculateScore computes the 0-100 buyer score and A/B/C tier from six
// independently-capped weighted factors. It is pure and deterministic:
// identical inputs always produce an identical result.
func CalculateScore(b Buyer, in ScoreInput) ScoreResult {
	factors := []ScoreFactor{
		volumeFactor(in.Analysis),
		recencyFactor(in.Analysis),
		rateFactor("response_rate", in.ResponseRate, 15, "response rate"),
		rateFactor("closing_rate", in.ClosingRate, 20, "closing rate"),
		pofFactor(in.VerifiedPOF),
		completenessFactor(b, in.HasPreferences),
	}

	var total float64
	for _, f := range factors {
		total += f.Score
	}
	score := int(math.Round(total))
	if score > 100 {
		score = 100
	}

	return ScoreResult{
		Score:           score,
		Tier:            TierForScore(score),
		Factors:         factors,
		Recommendations: recommend(factors),
	}
}

func TierForScore(score int) Tier {
	switch {
	case score >= 80:
		return TierA
	case score >= 50:
		return TierB
	default:
		return TierC
	}
}

func volumeFactor(a *TransactionAnalysis) ScoreFactor {
	f := ScoreFactor{Name: "transaction_volume", MaxScore: 25, Reason: "no recorded transactions"}
	if a == nil || a.Count == 0 {
		return f
	}
	f.Score = math.Min(float64(a.Count)*5, 25)
	f.Reason = "transaction history on record"
	return f
}

func recencyFactor(a *TransactionAnalysis) ScoreFactor {
	f := ScoreFactor{Name: "transaction_recency", MaxScore: 20, Reason: "no recent transactions"}
	if a == nil || a.DaysSinceLast == nil {
		return f
	}
	days := *a.DaysSinceLast
	switch {
	case days <= 30:
		f.Score = 20
		f.Reason = "transacted within the last 30 days"
	case days <= 90:
		f.Score = 15
		f.Reason = "transacted within the last 90 days"
	case days <= 180:
		f.Score = 10
		f.Reason = "transacted within the last 180 days"
	case days <= 365:
		f.Score = 5
		f.Reason = "transacted within the last year"
	}
	return f
}

func rateFactor(name string, rate *float64, max float64, label string) ScoreFactor {
	f := ScoreFactor{Name: name, MaxScore: max, Reason: "no " + label + " data"}
	if rate == nil {
		return f
	}
	r := *rate
	if r < 0 {
		r = 0
	}
	if r > 100 {
		r = 100
	}
	f.Score = r / 100 * max
	f.Reason = label + " on record"
	return f
}

func pofFactor(verified bool) ScoreFactor {
	f := ScoreFactor{Name: "proof_of_funds", MaxScore: 10, Reason: "proof of funds not verified"}
	if verified {
		f.Score = 10
		f.Reason = "verified proof of funds"
	}
	return f
}

func completenessFactor(b Buyer, hasPrefs bool) ScoreFactor {
	f := ScoreFactor{Name: "profile_completeness", MaxScore: 10}
	var pts float64
	if b.Name != "" {
		pts += 2
	}
	if b.Email != nil && *b.Email != "" {
		pts += 2
	}
	if b.Phone != nil && *b.Phone != "" {
		pts += 2
	}
	if b.BuyerType != nil && *b.BuyerType != "" {
		pts += 2
	}
	if hasPrefs {
		pts += 2
	}
	f.Score = math.Min(pts, 10)
	if f.Score == 10 {
		f.Reason = "profile complete"
	} else {
		f.Reason = "profile incomplete"
	}
	return f
}

// recommend picks up to three follow-ups for the factors that under-scored,
// most impactful first.
func recommend(factors []ScoreFactor) []string {
	byName := make(map[string]ScoreFactor, len(factors))
	for _, f := range factors {
		byName[f.Name] = f
	}

	var out []string
	add := func(name, msg string) {
		if len(out) >= maxRecommendations {
			return
		}
		if f, ok := byName[name]; ok && f.Score < f.MaxScore {
			out = append(out, msg)
		}
	}

	add("proof_of_funds", "Submit proof of funds for verification")
	add("transaction_recency", "Record a recent transaction to establish activity")
	add("closing_rate", "Close more of the deals you engage with")
	add("response_rate", "Respond to outreach faster to raise your response rate")
	add("profile_completeness", "Complete the buyer profile (contact info and preferences)")
	add("transaction_volume", "Add past transactions to build a track record")
	return out
}
