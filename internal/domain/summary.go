package domain

import "github.com/shopspring/decimal"

// BudgetSummary is a derived snapshot of totals over a transaction subset.
// It has no identity and is recomputed on demand, never cached.
type BudgetSummary struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetAmount     decimal.Decimal `json:"netAmount"`
	IncomeCount   int             `json:"incomeCount"`
	ExpenseCount  int             `json:"expenseCount"`
	SavingsRate   decimal.Decimal `json:"savingsRate"`
}

// CategorySummary aggregates one category over a transaction subset. The
// percentage is relative to that subset's total, rounded to two places.
type CategorySummary struct {
	Category         Category        `json:"category"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	TransactionCount int             `json:"transactionCount"`
	Percentage       decimal.Decimal `json:"percentage"`
}

// CategoryTotal is the compact per-category row of the combined summary,
// covering income and expense transactions together.
type CategoryTotal struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}
