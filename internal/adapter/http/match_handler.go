package http

import (
	"net/http"

	buyerDomain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/internal/usecase/matching"

	"github.com/labstack/echo/v4"
)

type MatchHandler struct{ uc *matching.Usecase }

func NewMatchHandler(uc *matching.Usecase) *MatchHandler { return &MatchHandler{uc: uc} }

type matchReq struct {
	Property struct {
		PropertyID       *string  `json:"property_id"       validate:"omitempty,hex32"`
		Address          string   `json:"address"`
		PropertyType     *string  `json:"property_type"`
		Bedrooms         *int     `json:"bedrooms"          validate:"omitempty,gte=0"`
		AskingPrice      *float64 `json:"asking_price"      validate:"omitempty,gte=0,dec2"`
		EstimatedARV     *float64 `json:"estimated_arv"     validate:"omitempty,gte=0,dec2"`
		EstimatedRepairs *float64 `json:"estimated_repairs" validate:"omitempty,gte=0,dec2"`
	} `json:"property"`
	Criteria struct {
		Statuses      []string `json:"statuses"        validate:"dive,oneof=active inactive qualified unqualified"`
		Tiers         []string `json:"tiers"           validate:"dive,oneof=A B C"`
		MinMatchScore *int     `json:"min_match_score" validate:"omitempty,gte=0,lte=100"`
		MaxResults    *int     `json:"max_results"     validate:"omitempty,gte=1"`
	} `json:"criteria"`
}

func (h *MatchHandler) MatchBuyers(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	prop := matching.PropertySnapshot{
		PropertyID:       req.Property.PropertyID,
		Address:          req.Property.Address,
		PropertyType:     req.Property.PropertyType,
		Bedrooms:         req.Property.Bedrooms,
		AskingPrice:      req.Property.AskingPrice,
		EstimatedARV:     req.Property.EstimatedARV,
		EstimatedRepairs: req.Property.EstimatedRepairs,
	}
	crit := matching.Criteria{
		MinMatchScore: req.Criteria.MinMatchScore,
		MaxResults:    req.Criteria.MaxResults,
	}
	for _, s := range req.Criteria.Statuses {
		crit.Statuses = append(crit.Statuses, buyerDomain.Status(s))
	}
	for _, t := range req.Criteria.Tiers {
		crit.Tiers = append(crit.Tiers, buyerDomain.Tier(t))
	}

	out, err := h.uc.MatchBuyersToProperty(c.Request().Context(), uid, prop, crit)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"matches": out})
}
