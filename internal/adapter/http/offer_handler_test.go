package http

import (
	"context"
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dealDomain "dealflow-backend/internal/domain/deal"
	offerDomain "dealflow-backend/internal/domain/offer"
	"dealflow-backend/internal/testutil/dealmock"
	"dealflow-backend/internal/testutil/offermock"
	offerUC "dealflow-backend/internal/usecase/offer"

	"gorm.io/gorm"
)

func offerDealRepo() *dealmock.Repo {
	return &dealmock.Repo{
		GetByDealIDFn: func(ctx context.Context, userID, dealID string) (*dealDomain.Deal, error) {
			if userID != testUserID {
				return nil, gorm.ErrRecordNotFound
			}
			return &dealDomain.Deal{ID: 4, DealID: dealID, UserID: userID}, nil
		},
	}
}

func TestCreateOffer_Success(t *testing.T) {
	e := newEchoWithValidator()

	var created *offerDomain.Offer
	offers := &offermock.Repo{
		CreateFn: func(ctx context.Context, o *offerDomain.Offer) error {
			created = o
			return nil
		},
	}
	h := NewOfferHandler(offerUC.NewUsecase(offerDealRepo(), offers))

	body := mustJSON(map[string]any{
		"amount":     135000,
		"offer_date": "2026-03-10",
	})
	req := newRequest(stdhttp.MethodPost, "/deals/"+strings.Repeat("d", 32)+"/offers", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/deals/:deal_id/offers")
	c.SetParamNames("deal_id")
	c.SetParamValues(strings.Repeat("d", 32))

	if err := h.CreateOffer(c); err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	if created == nil || created.DealID != 4 || created.Status != offerDomain.StatusPending {
		t.Fatalf("created: %+v", created)
	}
}

func TestCreateOffer_ValidationFailure(t *testing.T) {
	e := newEchoWithValidator()
	h := NewOfferHandler(offerUC.NewUsecase(offerDealRepo(), &offermock.Repo{}))

	body := mustJSON(map[string]any{"amount": -5})
	req := newRequest(stdhttp.MethodPost, "/deals/"+strings.Repeat("d", 32)+"/offers", body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/deals/:deal_id/offers")
	c.SetParamNames("deal_id")
	c.SetParamValues(strings.Repeat("d", 32))

	if err := h.CreateOffer(c); err != nil {
		t.Fatalf("CreateOffer: %v", err)
	}
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !containsFieldMsg(resp.Details, "Amount", "gt") {
		t.Fatalf("details missing amount: %+v", resp.Details)
	}
}

func TestListOffers_Success(t *testing.T) {
	e := newEchoWithValidator()

	offers := &offermock.Repo{
		ListByDealIDFn: func(ctx context.Context, dealID uint64) ([]offerDomain.Offer, error) {
			return []offerDomain.Offer{
				{OfferID: strings.Repeat("1", 32), Amount: 130000, Status: offerDomain.StatusPending},
				{OfferID: strings.Repeat("2", 32), Amount: 125000, Status: offerDomain.StatusRejected},
			}, nil
		},
	}
	h := NewOfferHandler(offerUC.NewUsecase(offerDealRepo(), offers))

	req := newRequest(stdhttp.MethodGet, "/deals/"+strings.Repeat("d", 32)+"/offers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/deals/:deal_id/offers")
	c.SetParamNames("deal_id")
	c.SetParamValues(strings.Repeat("d", 32))

	if err := h.ListOffers(c); err != nil {
		t.Fatalf("ListOffers: %v", err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Offers []offerUC.OfferDTO `json:"offers"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Offers) != 2 {
		t.Fatalf("offers: %+v", resp.Offers)
	}
}

func TestUpdateOffer_FinalConflict(t *testing.T) {
	e := newEchoWithValidator()

	offers := &offermock.Repo{
		GetByOfferIDFn: func(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
			return &offerDomain.Offer{OfferID: offerID, DealID: 4, Status: offerDomain.StatusAccepted}, nil
		},
	}
	h := NewOfferHandler(offerUC.NewUsecase(offerDealRepo(), offers))

	body := mustJSON(map[string]any{"status": "withdrawn"})
	req := newRequest(stdhttp.MethodPatch, "/deals/"+strings.Repeat("d", 32)+"/offers/"+strings.Repeat("1", 32), body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/deals/:deal_id/offers/:offer_id")
	c.SetParamNames("deal_id", "offer_id")
	c.SetParamValues(strings.Repeat("d", 32), strings.Repeat("1", 32))

	if err := h.UpdateOffer(c); err != nil {
		t.Fatalf("UpdateOffer: %v", err)
	}
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
}

func TestUpdateOffer_NotFoundForForeignDeal(t *testing.T) {
	e := newEchoWithValidator()

	offers := &offermock.Repo{
		GetByOfferIDFn: func(ctx context.Context, offerID string) (*offerDomain.Offer, error) {
			return &offerDomain.Offer{OfferID: offerID, DealID: 999, Status: offerDomain.StatusPending}, nil
		},
	}
	h := NewOfferHandler(offerUC.NewUsecase(offerDealRepo(), offers))

	body := mustJSON(map[string]any{"status": "rejected"})
	req := newRequest(stdhttp.MethodPatch, "/deals/"+strings.Repeat("d", 32)+"/offers/"+strings.Repeat("1", 32), body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/deals/:deal_id/offers/:offer_id")
	c.SetParamNames("deal_id", "offer_id")
	c.SetParamValues(strings.Repeat("d", 32), strings.Repeat("1", 32))

	if err := h.UpdateOffer(c); err != nil {
		t.Fatalf("UpdateOffer: %v", err)
	}
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("code = %d body = %s", rec.Code, rec.Body.String())
	}
}
