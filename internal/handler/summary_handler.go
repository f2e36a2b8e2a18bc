package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/centavo-app/centavo-backend/internal/service"
)

// SummaryHandler handles reporting and analytics HTTP requests
type SummaryHandler struct {
	budgetService *service.BudgetService
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(budgetService *service.BudgetService) *SummaryHandler {
	return &SummaryHandler{budgetService: budgetService}
}

// GetSummary handles GET /budgets/:id/summary
func (h *SummaryHandler) GetSummary(c echo.Context) error {
	summary, err := h.budgetService.Summary(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetMonthlyBreakdown handles GET /budgets/:id/summary/:year/:month
func (h *SummaryHandler) GetMonthlyBreakdown(c echo.Context) error {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1900 || year > 2200 {
		return NewValidationError(c, "Invalid year", []ValidationError{
			{Field: "year", Message: "Year must be between 1900 and 2200"},
		})
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return NewValidationError(c, "Invalid month", []ValidationError{
			{Field: "month", Message: "Month must be between 1 and 12"},
		})
	}

	summary, err := h.budgetService.MonthlyBreakdown(c.Param("id"), year, time.Month(month))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summary)
}

// GetCategoryTotals handles GET /budgets/:id/reports/category-totals
func (h *SummaryHandler) GetCategoryTotals(c echo.Context) error {
	totals, err := h.budgetService.CategoryTotals(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}

// GetIncomeByCategory handles GET /budgets/:id/reports/income-by-category
func (h *SummaryHandler) GetIncomeByCategory(c echo.Context) error {
	summaries, err := h.budgetService.IncomeByCategory(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetExpensesByCategory handles GET /budgets/:id/reports/expenses-by-category
func (h *SummaryHandler) GetExpensesByCategory(c echo.Context) error {
	summaries, err := h.budgetService.ExpensesByCategory(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetTopExpenses handles GET /budgets/:id/reports/top-expenses
func (h *SummaryHandler) GetTopExpenses(c echo.Context) error {
	limit := 0
	if limitStr := c.QueryParam("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			return NewValidationError(c, "Invalid limit", []ValidationError{
				{Field: "limit", Message: "Limit must be a positive integer"},
			})
		}
		limit = parsed
	}

	expenses, err := h.budgetService.TopExpenses(c.Param("id"), limit)
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]TransactionResponse, 0, len(expenses))
	for _, tx := range expenses {
		out = append(out, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, out)
}

// GetEssentialExpenses handles GET /budgets/:id/reports/essential-expenses
func (h *SummaryHandler) GetEssentialExpenses(c echo.Context) error {
	expenses, err := h.budgetService.EssentialExpenses(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]TransactionResponse, 0, len(expenses))
	for _, tx := range expenses {
		out = append(out, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, out)
}

// GetDiscretionaryExpenses handles GET /budgets/:id/reports/discretionary-expenses
func (h *SummaryHandler) GetDiscretionaryExpenses(c echo.Context) error {
	expenses, err := h.budgetService.DiscretionaryExpenses(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]TransactionResponse, 0, len(expenses))
	for _, tx := range expenses {
		out = append(out, toTransactionResponse(tx))
	}
	return c.JSON(http.StatusOK, out)
}

// GetMonthlyTrend handles GET /budgets/:id/reports/monthly-trend
func (h *SummaryHandler) GetMonthlyTrend(c echo.Context) error {
	trend, err := h.budgetService.MonthlyTrendData(c.Param("id"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, trend)
}
