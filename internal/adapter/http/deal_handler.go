package http

import (
	"errors"
	"net/http"
	"strconv"

	dealDomain "dealflow-backend/internal/domain/deal"
	"dealflow-backend/internal/usecase/deal"

	"github.com/labstack/echo/v4"
)

type DealHandler struct{ uc *deal.Usecase }

func NewDealHandler(uc *deal.Usecase) *DealHandler { return &DealHandler{uc: uc} }

type createDealReq struct {
	PropertyID       *string  `json:"property_id"       validate:"omitempty,hex32"`
	PropertyAddress  string   `json:"property_address"  validate:"required"`
	SellerName       *string  `json:"seller_name"`
	SellerPhone      *string  `json:"seller_phone"`
	SellerEmail      *string  `json:"seller_email"      validate:"omitempty,email"`
	AskingPrice      *float64 `json:"asking_price"      validate:"omitempty,gte=0,dec2"`
	EstimatedARV     *float64 `json:"estimated_arv"     validate:"omitempty,gte=0,dec2"`
	EstimatedRepairs *float64 `json:"estimated_repairs" validate:"omitempty,gte=0,dec2"`
	Notes            string   `json:"notes"`
}

type updateDealReq struct {
	Stage            *string  `json:"stage"             validate:"omitempty,stage"`
	Status           *string  `json:"status"            validate:"omitempty,oneof=active on_hold cancelled completed"`
	PropertyID       *string  `json:"property_id"       validate:"omitempty,hex32"`
	PropertyAddress  *string  `json:"property_address"`
	SellerName       *string  `json:"seller_name"`
	SellerPhone      *string  `json:"seller_phone"`
	SellerEmail      *string  `json:"seller_email"      validate:"omitempty,email"`
	AskingPrice      *float64 `json:"asking_price"      validate:"omitempty,gte=0,dec2"`
	OfferPrice       *float64 `json:"offer_price"       validate:"omitempty,gte=0,dec2"`
	ContractPrice    *float64 `json:"contract_price"    validate:"omitempty,gte=0,dec2"`
	AssignmentFee    *float64 `json:"assignment_fee"    validate:"omitempty,gte=0,dec2"`
	EstimatedARV     *float64 `json:"estimated_arv"     validate:"omitempty,gte=0,dec2"`
	EstimatedRepairs *float64 `json:"estimated_repairs" validate:"omitempty,gte=0,dec2"`
	AssignedBuyerID  *string  `json:"assigned_buyer_id" validate:"omitempty,hex32"`
	Notes            *string  `json:"notes"`
}

// transitionBody extends the plain error payload with the machine-readable
// hint clients use to prompt for the missing field.
type transitionBody struct {
	Error          string `json:"error"`
	From           string `json:"from"`
	To             string `json:"to"`
	RequiresAction string `json:"requires_action,omitempty"`
}

func (h *DealHandler) CreateDeal(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req createDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), deal.CreateDealInput{
		UserID:           uid,
		PropertyID:       req.PropertyID,
		PropertyAddress:  req.PropertyAddress,
		SellerName:       req.SellerName,
		SellerPhone:      req.SellerPhone,
		SellerEmail:      req.SellerEmail,
		AskingPrice:      req.AskingPrice,
		EstimatedARV:     req.EstimatedARV,
		EstimatedRepairs: req.EstimatedRepairs,
		Notes:            req.Notes,
	})
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *DealHandler) GetDeal(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	dto, err := h.uc.Get(c.Request().Context(), uid, c.Param("deal_id"))
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) ListDeals(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	f, err := listFilterFromQuery(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	out, err := h.uc.List(c.Request().Context(), uid, f)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"deals": out})
}

func (h *DealHandler) UpdateDeal(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req updateDealReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	in := deal.UpdateDealInput{
		PropertyID:       req.PropertyID,
		PropertyAddress:  req.PropertyAddress,
		SellerName:       req.SellerName,
		SellerPhone:      req.SellerPhone,
		SellerEmail:      req.SellerEmail,
		AskingPrice:      req.AskingPrice,
		OfferPrice:       req.OfferPrice,
		ContractPrice:    req.ContractPrice,
		AssignmentFee:    req.AssignmentFee,
		EstimatedARV:     req.EstimatedARV,
		EstimatedRepairs: req.EstimatedRepairs,
		AssignedBuyerID:  req.AssignedBuyerID,
		Notes:            req.Notes,
	}
	if req.Stage != nil {
		s := dealDomain.Stage(*req.Stage)
		in.Stage = &s
	}
	if req.Status != nil {
		s := dealDomain.Status(*req.Status)
		in.Status = &s
	}
	dto, err := h.uc.Update(c.Request().Context(), uid, c.Param("deal_id"), in)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *DealHandler) GetBoard(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	out, err := h.uc.GetDealsByStage(c.Request().Context(), uid)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"stages": out})
}

func (h *DealHandler) GetPipelineStats(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	stats, err := h.uc.GetPipelineStats(c.Request().Context(), uid)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func listFilterFromQuery(c echo.Context) (dealDomain.ListFilter, error) {
	var f dealDomain.ListFilter
	if v := c.QueryParam("stage"); v != "" {
		s := dealDomain.Stage(v)
		if !dealDomain.ValidStage(s) {
			return f, errors.New("unknown stage filter")
		}
		f.Stage = &s
	}
	if v := c.QueryParam("status"); v != "" {
		s := dealDomain.Status(v)
		f.Status = &s
	}
	if v := c.QueryParam("assigned_buyer_id"); v != "" {
		f.AssignedBuyerID = &v
	}
	f.Search = c.QueryParam("q")
	if v := c.QueryParam("price_min"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("invalid price_min")
		}
		f.PriceMin = &n
	}
	if v := c.QueryParam("price_max"); v != "" {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, errors.New("invalid price_max")
		}
		f.PriceMax = &n
	}
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid limit")
		}
		f.Limit = n
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, errors.New("invalid offset")
		}
		f.Offset = n
	}
	return f, nil
}

// dealError maps domain errors → HTTP codes. Transitions carry their own
// payload so the client can tell a wrong move from a missing field.
func dealError(c echo.Context, err error) error {
	var te *dealDomain.TransitionError
	if errors.As(err, &te) {
		code := http.StatusConflict
		if errors.Is(err, dealDomain.ErrPreconditionNotMet) {
			code = http.StatusUnprocessableEntity
		}
		return c.JSON(code, transitionBody{
			Error:          te.Reason,
			From:           string(te.From),
			To:             string(te.To),
			RequiresAction: te.RequiresAction,
		})
	}
	switch {
	case errors.Is(err, dealDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, dealDomain.ErrInvalidStage):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
}
