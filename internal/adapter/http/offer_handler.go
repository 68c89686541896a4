package http

import (
	"errors"
	"net/http"
	"time"

	offerDomain "dealflow-backend/internal/domain/offer"
	"dealflow-backend/internal/usecase/offer"

	"github.com/labstack/echo/v4"
)

type OfferHandler struct{ uc *offer.Usecase }

func NewOfferHandler(uc *offer.Usecase) *OfferHandler { return &OfferHandler{uc: uc} }

type createOfferReq struct {
	Amount    float64 `json:"amount"     validate:"required,gt=0,dec2"`
	OfferDate *string `json:"offer_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiresAt *string `json:"expires_at" validate:"omitempty,datetime=2006-01-02"`
}

type updateOfferReq struct {
	Status        string   `json:"status"         validate:"required,oneof=pending accepted rejected countered expired withdrawn"`
	CounterAmount *float64 `json:"counter_amount" validate:"omitempty,gt=0,dec2"`
}

func (h *OfferHandler) CreateOffer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	offerDate := time.Now().UTC().Truncate(24 * time.Hour)
	if t := parseDate(req.OfferDate); t != nil {
		offerDate = *t
	}
	expiresAt := parseDate(req.ExpiresAt)

	dto, err := h.uc.Create(c.Request().Context(), offer.CreateInput{
		UserID:    uid,
		DealID:    c.Param("deal_id"),
		Amount:    req.Amount,
		OfferDate: offerDate,
		ExpiresAt: expiresAt,
	})
	if err != nil {
		return offerError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *OfferHandler) ListOffers(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	out, err := h.uc.List(c.Request().Context(), uid, c.Param("deal_id"))
	if err != nil {
		return offerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"offers": out})
}

func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req updateOfferReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.UpdateStatus(c.Request().Context(), offer.UpdateStatusInput{
		UserID:        uid,
		DealID:        c.Param("deal_id"),
		OfferID:       c.Param("offer_id"),
		Status:        offerDomain.Status(req.Status),
		CounterAmount: req.CounterAmount,
	})
	if err != nil {
		return offerError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func offerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, offerDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, offer.ErrOfferFinal):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		return dealError(c, err)
	}
}
