package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/centavo-app/centavo-backend/internal/service"
)

// maxImportBodySize caps import payloads at 5 MB
const maxImportBodySize = 5 << 20

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService *service.BudgetService
}

// NewBudgetHandler creates a new BudgetHandler
func NewBudgetHandler(budgetService *service.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// CreateBudgetRequest represents the create budget request body
type CreateBudgetRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Limit       *string `json:"limit,omitempty" validate:"omitempty,money_amount"`
}

// SetLimitRequest represents the update limit request body
type SetLimitRequest struct {
	Limit string `json:"limit" validate:"required,money_amount"`
}

// BudgetResponse represents a budget in API responses
type BudgetResponse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	Limit            string `json:"limit"`
	TransactionCount int    `json:"transactionCount"`
	CategoryCount    int    `json:"categoryCount"`
}

func toBudgetResponse(b service.BudgetInfo) BudgetResponse {
	return BudgetResponse{
		ID:               b.ID,
		Name:             b.Name,
		Description:      b.Description,
		Limit:            b.Limit.StringFixed(2),
		TransactionCount: b.TransactionCount,
		CategoryCount:    b.CategoryCount,
	}
}

// CreateBudget handles POST /budgets
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	var req CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	input := service.CreateBudgetInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Limit != nil {
		limit, err := decimal.NewFromString(*req.Limit)
		if err != nil {
			return NewValidationError(c, "Invalid limit", []ValidationError{
				{Field: "limit", Message: "Must be a valid decimal number"},
			})
		}
		input.Limit = &limit
	}

	budget, err := h.budgetService.CreateBudget(input)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toBudgetResponse(budget))
}

// GetBudgets handles GET /budgets
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	budgets := h.budgetService.ListBudgets()

	out := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	return c.JSON(http.StatusOK, out)
}

// GetBudget handles GET /budgets/:id
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	budget, err := h.budgetService.GetBudget(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// DeleteBudget handles DELETE /budgets/:id
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	if err := h.budgetService.DeleteBudget(c.Param("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SetLimit handles PUT /budgets/:id/limit
func (h *BudgetHandler) SetLimit(c echo.Context) error {
	var req SetLimitRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	limit, err := decimal.NewFromString(req.Limit)
	if err != nil {
		return NewValidationError(c, "Invalid limit", []ValidationError{
			{Field: "limit", Message: "Must be a valid decimal number"},
		})
	}

	if err := h.budgetService.SetLimit(c.Param("id"), limit); err != nil {
		return respondServiceError(c, err)
	}

	budget, err := h.budgetService.GetBudget(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// ExportBudget handles GET /budgets/:id/export
func (h *BudgetHandler) ExportBudget(c echo.Context) error {
	data, err := h.budgetService.ExportJSON(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// ImportBudget handles POST /budgets/:id/import
func (h *BudgetHandler) ImportBudget(c echo.Context) error {
	budgetID := c.Param("id")

	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxImportBodySize))
	if err != nil {
		return NewValidationError(c, "Could not read request body", nil)
	}

	if err := h.budgetService.ImportJSON(budgetID, data); err != nil {
		return respondServiceError(c, err)
	}

	log.Info().Str("budget_id", budgetID).Msg("Budget imported")

	budget, err := h.budgetService.GetBudget(budgetID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toBudgetResponse(budget))
}

// ClearTransactions handles DELETE /budgets/:id/transactions
func (h *BudgetHandler) ClearTransactions(c echo.Context) error {
	if err := h.budgetService.ClearTransactions(c.Param("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
