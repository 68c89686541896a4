package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	domain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/internal/testutil/buyermock"
	"dealflow-backend/internal/usecase/matching"

	"github.com/labstack/echo/v4"
)

func TestMatchBuyers_Success(t *testing.T) {
	e := newEchoWithValidator()

	buyers := &buyermock.Repo{
		ListByUserFn: func(ctx context.Context, userID string, f domain.CandidateFilter) ([]domain.Buyer, error) {
			return []domain.Buyer{
				{ID: 1, BuyerID: strings.Repeat("1", 32), UserID: userID, Name: "Fit Buyer", Status: domain.StatusActive, Tier: domain.TierA},
				{ID: 2, BuyerID: strings.Repeat("2", 32), UserID: userID, Name: "No Prefs", Status: domain.StatusActive, Tier: domain.TierB},
			}, nil
		},
	}
	min, max := 150_000.0, 250_000.0
	prefs := &buyermock.PrefsRepo{
		GetForBuyersFn: func(ctx context.Context, buyerIDs []uint64) (map[uint64]domain.Preferences, error) {
			return map[uint64]domain.Preferences{
				1: {BuyerID: 1, PriceRangeMin: &min, PriceRangeMax: &max},
			}, nil
		},
	}
	h := NewMatchHandler(matching.NewUsecase(buyers, prefs))

	reqBody := map[string]any{
		"property": map[string]any{
			"address":      "55 Cedar Ct",
			"asking_price": 200000,
		},
		"criteria": map[string]any{
			"min_match_score": 0,
		},
	}
	req := newRequest(stdhttp.MethodPost, "/matches", mustJSON(reqBody))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.MatchBuyers(c); err != nil {
		t.Fatalf("MatchBuyers error: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Matches []matching.BuyerMatchResult `json:"matches"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if len(body.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(body.Matches))
	}
	// In-range price beats the flat no-preferences baseline.
	if body.Matches[0].BuyerName != "Fit Buyer" {
		t.Fatalf("unexpected ranking: %+v", body.Matches)
	}
	for _, m := range body.Matches {
		if m.Score < 0 || m.Score > 100 {
			t.Fatalf("score out of range: %+v", m)
		}
	}
}

func TestMatchBuyers_ValidationError(t *testing.T) {
	e := newEchoWithValidator()
	h := NewMatchHandler(matching.NewUsecase(&buyermock.Repo{}, &buyermock.PrefsRepo{}))

	reqBody := map[string]any{
		"property": map[string]any{"address": "x", "asking_price": -1},
		"criteria": map[string]any{"tiers": []string{"D"}},
	}
	req := newRequest(stdhttp.MethodPost, "/matches", mustJSON(reqBody))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.MatchBuyers(c); err != nil {
		t.Fatalf("MatchBuyers error: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestMatchBuyers_MissingUserHeader(t *testing.T) {
	e := newEchoWithValidator()
	h := NewMatchHandler(matching.NewUsecase(&buyermock.Repo{}, &buyermock.PrefsRepo{}))

	req := httptest.NewRequest(stdhttp.MethodPost, "/matches", mustJSON(map[string]any{}))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.MatchBuyers(c); err != nil {
		t.Fatalf("MatchBuyers error: %v", err)
	}
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
