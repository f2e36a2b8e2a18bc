package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/service"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	budgetService *service.BudgetService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(budgetService *service.BudgetService) *TransactionHandler {
	return &TransactionHandler{budgetService: budgetService}
}

// CreateTransactionRequest represents the create transaction request body
type CreateTransactionRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description string  `json:"description" validate:"max=500"`
	Amount      string  `json:"amount" validate:"required,money_amount"`
	Type        string  `json:"type" validate:"required,transaction_type"`
	CategoryID  string  `json:"categoryId" validate:"required"`
	Date        *string `json:"date,omitempty"`
}

// UpdateTransactionRequest represents the update transaction request body.
// Absent fields are left untouched; the transaction type cannot change.
type UpdateTransactionRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=500"`
	Amount      *string `json:"amount,omitempty" validate:"omitempty,money_amount"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Date        *string `json:"date,omitempty"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	Amount          string `json:"amount"`
	FormattedAmount string `json:"formattedAmount"`
	Date            string `json:"date"`
	CategoryID      string `json:"categoryId"`
	Type            string `json:"type"`

	// Expense-only derived fields
	Essential *bool   `json:"essential,omitempty"`
	Priority  *string `json:"priority,omitempty"`

	// Income-only derived fields
	Recurring         *bool   `json:"recurring,omitempty"`
	MonthlyEquivalent *string `json:"monthlyEquivalent,omitempty"`
}

func toTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:              t.ID(),
		Name:            t.Name(),
		Description:     t.Description(),
		Amount:          t.Amount().StringFixed(2),
		FormattedAmount: t.FormattedAmount(),
		Date:            t.Date().Format(time.RFC3339),
		CategoryID:      t.CategoryID(),
		Type:            string(t.Type()),
	}

	if t.IsExpense() {
		essential := t.IsEssential()
		priority := string(t.Priority())
		resp.Essential = &essential
		resp.Priority = &priority
	} else {
		recurring := t.IsRecurring()
		monthly := t.MonthlyEquivalent(time.Now().UTC()).StringFixed(2)
		resp.Recurring = &recurring
		resp.MonthlyEquivalent = &monthly
	}

	return resp
}

// CreateTransaction handles POST /budgets/:id/transactions
func (h *TransactionHandler) CreateTransaction(c echo.Context) error {
	var req CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return NewValidationError(c, "Invalid amount", []ValidationError{
			{Field: "amount", Message: "Must be a valid decimal number"},
		})
	}

	var date time.Time
	if req.Date != nil && *req.Date != "" {
		date, err = parseDateParam(*req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be RFC 3339 or YYYY-MM-DD"},
			})
		}
	}

	tx, err := h.budgetService.AddTransaction(c.Param("id"), service.TransactionInput{
		Name:        req.Name,
		Description: req.Description,
		Amount:      amount,
		Date:        date,
		CategoryID:  req.CategoryID,
		Type:        domain.TransactionType(req.Type),
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

// GetTransactions handles GET /budgets/:id/transactions
func (h *TransactionHandler) GetTransactions(c echo.Context) error {
	filter := service.TransactionFilter{
		CategoryID: c.QueryParam("categoryId"),
	}

	if typeStr := c.QueryParam("type"); typeStr != "" {
		txType := domain.TransactionType(typeStr)
		if !domain.ValidTransactionType(txType) {
			return NewValidationError(c, "Invalid type", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense"},
			})
		}
		filter.Type = &txType
	}
	if fromStr := c.QueryParam("from"); fromStr != "" {
		from, err := parseDateParam(fromStr)
		if err != nil {
			return NewValidationError(c, "Invalid from date", nil)
		}
		filter.From = &from
	}
	if toStr := c.QueryParam("to"); toStr != "" {
		to, err := parseDateParam(toStr)
		if err != nil {
			return NewValidationError(c, "Invalid to date", nil)
		}
		filter.To = &to
	}

	txs, err := h.budgetService.Transactions(c.Param("id"), filter)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]TransactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, out)
}

// GetTransaction handles GET /budgets/:id/transactions/:txId
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	tx, err := h.budgetService.GetTransaction(c.Param("id"), c.Param("txId"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// UpdateTransaction handles PUT /budgets/:id/transactions/:txId
func (h *TransactionHandler) UpdateTransaction(c echo.Context) error {
	var req UpdateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	update := service.TransactionUpdate{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	}
	if req.Amount != nil {
		amount, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			return NewValidationError(c, "Invalid amount", []ValidationError{
				{Field: "amount", Message: "Must be a valid decimal number"},
			})
		}
		update.Amount = &amount
	}
	if req.Date != nil && *req.Date != "" {
		date, err := parseDateParam(*req.Date)
		if err != nil {
			return NewValidationError(c, "Invalid date", []ValidationError{
				{Field: "date", Message: "Must be RFC 3339 or YYYY-MM-DD"},
			})
		}
		update.Date = &date
	}

	tx, err := h.budgetService.UpdateTransaction(c.Param("id"), c.Param("txId"), update)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, toTransactionResponse(tx))
}

// DeleteTransaction handles DELETE /budgets/:id/transactions/:txId
func (h *TransactionHandler) DeleteTransaction(c echo.Context) error {
	if err := h.budgetService.RemoveTransaction(c.Param("id"), c.Param("txId")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// parseDateParam accepts RFC 3339 timestamps or bare YYYY-MM-DD dates
func parseDateParam(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
