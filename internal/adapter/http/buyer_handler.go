package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	buyerDomain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/internal/usecase/buyer"

	"github.com/labstack/echo/v4"
)

type BuyerHandler struct{ uc *buyer.Usecase }

func NewBuyerHandler(uc *buyer.Usecase) *BuyerHandler { return &BuyerHandler{uc: uc} }

type createBuyerReq struct {
	Name      string  `json:"name"       validate:"required"`
	Company   *string `json:"company"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Phone     *string `json:"phone"`
	BuyerType *string `json:"buyer_type"`
	Notes     string  `json:"notes"`
}

type updateBuyerReq struct {
	Name          *string    `json:"name"`
	Company       *string    `json:"company"`
	Email         *string    `json:"email"      validate:"omitempty,email"`
	Phone         *string    `json:"phone"`
	BuyerType     *string    `json:"buyer_type"`
	Notes         *string    `json:"notes"`
	VerifiedPOF   *bool      `json:"verified_pof"`
	LastContactAt *time.Time `json:"last_contact_at"`
}

type preferencesReq struct {
	PropertyTypes      []string `json:"property_types"`
	PriceRangeMin      *float64 `json:"price_range_min"     validate:"omitempty,gte=0,dec2"`
	PriceRangeMax      *float64 `json:"price_range_max"     validate:"omitempty,gte=0,dec2"`
	BedroomsMin        *int     `json:"bedrooms_min"        validate:"omitempty,gte=0"`
	BedroomsMax        *int     `json:"bedrooms_max"        validate:"omitempty,gte=0"`
	TargetMarkets      []string `json:"target_markets"`
	ConditionTolerance *string  `json:"condition_tolerance" validate:"omitempty,oneof=turnkey light moderate heavy gut"`
	MaxRehabBudget     *float64 `json:"max_rehab_budget"    validate:"omitempty,gte=0,dec2"`
	PreferredROI       *float64 `json:"preferred_roi"       validate:"omitempty,gte=0"`
}

type qualifyReq struct {
	Target string `json:"target" validate:"required,oneof=new contacted pof_received verified qualified"`
}

type rescoreReq struct {
	ResponseRate *float64 `json:"response_rate" validate:"omitempty,gte=0,lte=100"`
	ClosingRate  *float64 `json:"closing_rate"  validate:"omitempty,gte=0,lte=100"`
}

func (h *BuyerHandler) CreateBuyer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req createBuyerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), buyer.CreateBuyerInput{
		UserID:    uid,
		Name:      req.Name,
		Company:   req.Company,
		Email:     req.Email,
		Phone:     req.Phone,
		BuyerType: req.BuyerType,
		Notes:     req.Notes,
	})
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *BuyerHandler) GetBuyer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	dto, err := h.uc.Get(c.Request().Context(), uid, c.Param("buyer_id"))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BuyerHandler) ListBuyers(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var f buyerDomain.CandidateFilter
	for _, s := range splitCSV(c.QueryParam("status")) {
		f.Statuses = append(f.Statuses, buyerDomain.Status(s))
	}
	for _, s := range splitCSV(c.QueryParam("tier")) {
		f.Tiers = append(f.Tiers, buyerDomain.Tier(s))
	}
	out, err := h.uc.List(c.Request().Context(), uid, f)
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"buyers": out})
}

func (h *BuyerHandler) UpdateBuyer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req updateBuyerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Update(c.Request().Context(), uid, c.Param("buyer_id"), buyer.UpdateBuyerInput(req))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BuyerHandler) SetPreferences(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req preferencesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := buyer.PreferencesInput{
		PropertyTypes:  req.PropertyTypes,
		PriceRangeMin:  req.PriceRangeMin,
		PriceRangeMax:  req.PriceRangeMax,
		BedroomsMin:    req.BedroomsMin,
		BedroomsMax:    req.BedroomsMax,
		TargetMarkets:  req.TargetMarkets,
		MaxRehabBudget: req.MaxRehabBudget,
		PreferredROI:   req.PreferredROI,
	}
	if req.ConditionTolerance != nil {
		ct := buyerDomain.ConditionTolerance(*req.ConditionTolerance)
		in.ConditionTolerance = &ct
	}
	prefs, err := h.uc.SetPreferences(c.Request().Context(), uid, c.Param("buyer_id"), in)
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (h *BuyerHandler) GetPreferences(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	prefs, err := h.uc.GetPreferences(c.Request().Context(), uid, c.Param("buyer_id"))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, prefs)
}

func (h *BuyerHandler) QualifyBuyer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req qualifyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Qualify(c.Request().Context(), uid, c.Param("buyer_id"), buyerDomain.QualificationStage(req.Target))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *BuyerHandler) ListNeedsAttention(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	out, err := h.uc.NeedsAttention(c.Request().Context(), uid)
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"buyers": out})
}

func (h *BuyerHandler) RescoreBuyer(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req rescoreReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	result, err := h.uc.Rescore(c.Request().Context(), uid, c.Param("buyer_id"), buyer.RescoreInput(req))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func buyerError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, buyerDomain.ErrNotFound),
		errors.Is(err, buyerDomain.ErrPreferencesNotFound),
		errors.Is(err, buyerDomain.ErrTransactionNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, buyerDomain.ErrInvalidQualTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, buyerDomain.ErrInvalidQualificationStage):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
