package http

import (
	"net/http"
	"time"

	buyerDomain "dealflow-backend/internal/domain/buyer"
	"dealflow-backend/internal/usecase/transaction"

	"github.com/labstack/echo/v4"
)

type TransactionHandler struct{ uc *transaction.Usecase }

func NewTransactionHandler(uc *transaction.Usecase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

type addTransactionReq struct {
	PropertyAddress string   `json:"property_address" validate:"required"`
	Type            string   `json:"transaction_type" validate:"required,oneof=purchase sale"`
	PurchasePrice   *float64 `json:"purchase_price"   validate:"omitempty,gte=0,dec2"`
	PurchaseDate    *string  `json:"purchase_date"    validate:"omitempty,datetime=2006-01-02"`
	SalePrice       *float64 `json:"sale_price"       validate:"omitempty,gte=0,dec2"`
	SaleDate        *string  `json:"sale_date"        validate:"omitempty,datetime=2006-01-02"`
}

func (h *TransactionHandler) AddTransaction(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	var req addTransactionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Add(c.Request().Context(), transaction.AddInput{
		UserID:          uid,
		BuyerID:         c.Param("buyer_id"),
		PropertyAddress: req.PropertyAddress,
		Type:            buyerDomain.TransactionType(req.Type),
		PurchasePrice:   req.PurchasePrice,
		PurchaseDate:    parseDate(req.PurchaseDate),
		SalePrice:       req.SalePrice,
		SaleDate:        parseDate(req.SaleDate),
	})
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	out, err := h.uc.List(c.Request().Context(), uid, c.Param("buyer_id"))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"transactions": out})
}

func (h *TransactionHandler) AnalyzeTransactions(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing or invalid " + HeaderUserID})
	}
	analysis, err := h.uc.Analyze(c.Request().Context(), uid, c.Param("buyer_id"))
	if err != nil {
		return buyerError(c, err)
	}
	return c.JSON(http.StatusOK, analysis)
}

// parseDate assumes the validator already checked the YYYY-MM-DD layout.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil
	}
	return &t
}
