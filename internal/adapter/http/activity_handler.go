package http

import (
	"net/http"
	"strconv"

	actDomain "dealflow-backend/internal/domain/activity"
	"dealflow-backend/internal/usecase/activity"

	"github.com/labstack/echo/v4"
)

type ActivityHandler struct{ uc *activity.Usecase }

func NewActivityHandler(uc *activity.Usecase) *ActivityHandler { return &ActivityHandler{uc: uc} }

type logActivityReq struct {
	Type        string            `json:"activity_type" validate:"required,oneof=call email sms note stage_change meeting other"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata"`
}

func (h *ActivityHandler) LogActivity(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req logActivityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Log(c.Request().Context(), activity.LogInput{
		UserID:      uid,
		DealID:      c.Param("deal_id"),
		Type:        actDomain.Type(req.Type),
		Description: req.Description,
		Metadata:    actDomain.Metadata(req.Metadata),
	})
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ActivityHandler) ListActivities(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = n
	}
	out, err := h.uc.List(c.Request().Context(), uid, c.Param("deal_id"), limit)
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"activities": out})
}

func (h *ActivityHandler) GetActivitySummary(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	sum, err := h.uc.Summary(c.Request().Context(), uid, c.Param("deal_id"))
	if err != nil {
		return dealError(c, err)
	}
	return c.JSON(http.StatusOK, sum)
}
