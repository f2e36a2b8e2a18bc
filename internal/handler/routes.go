package handler

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, budgetHandler *BudgetHandler, transactionHandler *TransactionHandler, categoryHandler *CategoryHandler, summaryHandler *SummaryHandler, wsHandler *WebSocketHandler) {
	// API version 1
	api := e.Group("/api/v1")

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.CreateBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/:id", budgetHandler.GetBudget)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)
	budgets.PUT("/:id/limit", budgetHandler.SetLimit)
	budgets.GET("/:id/export", budgetHandler.ExportBudget)
	budgets.POST("/:id/import", budgetHandler.ImportBudget)

	// Transaction routes
	budgets.POST("/:id/transactions", transactionHandler.CreateTransaction)
	budgets.GET("/:id/transactions", transactionHandler.GetTransactions)
	budgets.GET("/:id/transactions/:txId", transactionHandler.GetTransaction)
	budgets.PUT("/:id/transactions/:txId", transactionHandler.UpdateTransaction)
	budgets.DELETE("/:id/transactions/:txId", transactionHandler.DeleteTransaction)
	budgets.DELETE("/:id/transactions", budgetHandler.ClearTransactions)

	// Category routes
	budgets.POST("/:id/categories", categoryHandler.CreateCategory)
	budgets.GET("/:id/categories", categoryHandler.GetCategories)
	budgets.PUT("/:id/categories/:categoryId", categoryHandler.UpdateCategory)
	budgets.DELETE("/:id/categories/:categoryId", categoryHandler.DeleteCategory)
	budgets.PATCH("/:id/categories/:categoryId/activate", categoryHandler.ActivateCategory)
	budgets.PATCH("/:id/categories/:categoryId/deactivate", categoryHandler.DeactivateCategory)

	// Summary and report routes
	budgets.GET("/:id/summary", summaryHandler.GetSummary)
	budgets.GET("/:id/summary/:year/:month", summaryHandler.GetMonthlyBreakdown)
	budgets.GET("/:id/reports/category-totals", summaryHandler.GetCategoryTotals)
	budgets.GET("/:id/reports/income-by-category", summaryHandler.GetIncomeByCategory)
	budgets.GET("/:id/reports/expenses-by-category", summaryHandler.GetExpensesByCategory)
	budgets.GET("/:id/reports/top-expenses", summaryHandler.GetTopExpenses)
	budgets.GET("/:id/reports/essential-expenses", summaryHandler.GetEssentialExpenses)
	budgets.GET("/:id/reports/discretionary-expenses", summaryHandler.GetDiscretionaryExpenses)
	budgets.GET("/:id/reports/monthly-trend", summaryHandler.GetMonthlyTrend)

	// WebSocket subscription per budget
	budgets.GET("/:id/ws", wsHandler.HandleWS)
}
