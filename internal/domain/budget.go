package domain

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultLimit is the spending limit applied when a budget or an imported
// document does not carry one.
var DefaultLimit = decimal.NewFromInt(1000)

var hundred = decimal.NewFromInt(100)

// Budget is the aggregate owning all transactions and the category manager
// for one user session. Transactions keep insertion order; removals preserve
// the position of the remaining entries. A Budget is intended to be mutated
// by exactly one logical session at a time and carries no internal locking.
type Budget struct {
	id           string
	name         string
	description  string
	limit        decimal.Decimal
	transactions []*Transaction
	categories   *CategoryManager
}

// NewBudget creates a budget with the default limit. When categories is nil a
// fresh CategoryManager seeded with the defaults is owned instead.
func NewBudget(id, name, description string, categories *CategoryManager) *Budget {
	if categories == nil {
		categories = NewCategoryManager()
	}
	return &Budget{
		id:          id,
		name:        name,
		description: description,
		limit:       DefaultLimit,
		categories:  categories,
	}
}

func (b *Budget) ID() string                   { return b.id }
func (b *Budget) Name() string                 { return b.name }
func (b *Budget) Description() string          { return b.description }
func (b *Budget) Limit() decimal.Decimal       { return b.limit }
func (b *Budget) Categories() *CategoryManager { return b.categories }

// SetLimit replaces the spending limit. Non-positive values are rejected and
// leave the current limit unchanged.
func (b *Budget) SetLimit(limit decimal.Decimal) error {
	if !limit.IsPositive() {
		return ErrInvalidLimit
	}
	b.limit = limit
	return nil
}

// AddTransaction appends to the end of the ordered list. No deduplication and
// no category validation happens here; that is the calling workflow's job.
func (b *Budget) AddTransaction(t *Transaction) {
	b.transactions = append(b.transactions, t)
}

// RemoveTransaction removes the first transaction with the given id,
// preserving the order of the rest. Returns false when the id is unknown.
func (b *Budget) RemoveTransaction(id string) bool {
	for i, t := range b.transactions {
		if t.ID() == id {
			b.transactions = append(b.transactions[:i], b.transactions[i+1:]...)
			return true
		}
	}
	return false
}

// GetTransaction looks up a transaction by id.
func (b *Budget) GetTransaction(id string) (*Transaction, bool) {
	for _, t := range b.transactions {
		if t.ID() == id {
			return t, true
		}
	}
	return nil, false
}

// AllTransactions returns a snapshot of the list in insertion order.
func (b *Budget) AllTransactions() []*Transaction {
	out := make([]*Transaction, len(b.transactions))
	copy(out, b.transactions)
	return out
}

// TransactionsByType returns a filtered snapshot, order preserved.
func (b *Budget) TransactionsByType(txType TransactionType) []*Transaction {
	return b.filterTransactions(func(t *Transaction) bool { return t.Type() == txType })
}

// TransactionsByCategory returns the transactions tagged with categoryID.
func (b *Budget) TransactionsByCategory(categoryID string) []*Transaction {
	return b.filterTransactions(func(t *Transaction) bool { return t.CategoryID() == categoryID })
}

// TransactionsByDateRange returns the transactions dated within [start, end],
// both ends inclusive.
func (b *Budget) TransactionsByDateRange(start, end time.Time) []*Transaction {
	return b.filterTransactions(func(t *Transaction) bool {
		return !t.Date().Before(start) && !t.Date().After(end)
	})
}

func (b *Budget) filterTransactions(keep func(*Transaction) bool) []*Transaction {
	out := make([]*Transaction, 0, len(b.transactions))
	for _, t := range b.transactions {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

// TotalIncome sums the amounts of all income transactions.
func (b *Budget) TotalIncome() decimal.Decimal {
	return b.totalByType(TransactionTypeIncome)
}

// TotalExpenses sums the amounts of all expense transactions.
func (b *Budget) TotalExpenses() decimal.Decimal {
	return b.totalByType(TransactionTypeExpense)
}

func (b *Budget) totalByType(txType TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range b.transactions {
		if t.Type() == txType {
			total = total.Add(t.Amount())
		}
	}
	return total
}

// NetAmount is total income minus total expenses.
func (b *Budget) NetAmount() decimal.Decimal {
	return b.TotalIncome().Sub(b.TotalExpenses())
}

// SavingsRate is the net amount as a percentage of income, exactly zero when
// there is no income at all.
func (b *Budget) SavingsRate() decimal.Decimal {
	return savingsRate(b.TotalIncome(), b.TotalExpenses())
}

func savingsRate(income, expenses decimal.Decimal) decimal.Decimal {
	if income.IsZero() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(hundred).Round(2)
}

// Summary computes the dashboard snapshot over the current transaction list.
func (b *Budget) Summary() BudgetSummary {
	return summarize(b.transactions)
}

func summarize(transactions []*Transaction) BudgetSummary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	incomeCount := 0
	expenseCount := 0

	for _, t := range transactions {
		if t.IsIncome() {
			totalIncome = totalIncome.Add(t.Amount())
			incomeCount++
		} else {
			totalExpenses = totalExpenses.Add(t.Amount())
			expenseCount++
		}
	}

	return BudgetSummary{
		TotalIncome:   totalIncome,
		TotalExpenses: totalExpenses,
		NetAmount:     totalIncome.Sub(totalExpenses),
		IncomeCount:   incomeCount,
		ExpenseCount:  expenseCount,
		SavingsRate:   savingsRate(totalIncome, totalExpenses),
	}
}

// IncomeByCategory groups income transactions by category; percentages are
// relative to total income.
func (b *Budget) IncomeByCategory() []CategorySummary {
	return b.byCategory(TransactionTypeIncome, b.TotalIncome())
}

// ExpensesByCategory groups expense transactions by category; percentages are
// relative to total expenses.
func (b *Budget) ExpensesByCategory() []CategorySummary {
	return b.byCategory(TransactionTypeExpense, b.TotalExpenses())
}

func (b *Budget) byCategory(txType TransactionType, total decimal.Decimal) []CategorySummary {
	type bucket struct {
		amount decimal.Decimal
		count  int
	}
	buckets := make(map[string]*bucket)
	var order []string

	for _, t := range b.transactions {
		if t.Type() != txType {
			continue
		}
		bk, ok := buckets[t.CategoryID()]
		if !ok {
			bk = &bucket{amount: decimal.Zero}
			buckets[t.CategoryID()] = bk
			order = append(order, t.CategoryID())
		}
		bk.amount = bk.amount.Add(t.Amount())
		bk.count++
	}

	out := make([]CategorySummary, 0, len(order))
	for _, id := range order {
		bk := buckets[id]
		pct := decimal.Zero
		if total.IsPositive() {
			pct = bk.amount.Div(total).Mul(hundred).Round(2)
		}
		out = append(out, CategorySummary{
			Category:         b.categorySnapshot(id),
			TotalAmount:      bk.amount,
			TransactionCount: bk.count,
			Percentage:       pct,
		})
	}
	return out
}

// CategoryTotals groups every transaction, income and expense together, by
// category; percentages are relative to the combined total of all amounts.
func (b *Budget) CategoryTotals() []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	var order []string
	combined := decimal.Zero

	for _, t := range b.transactions {
		if _, ok := totals[t.CategoryID()]; !ok {
			totals[t.CategoryID()] = decimal.Zero
			order = append(order, t.CategoryID())
		}
		totals[t.CategoryID()] = totals[t.CategoryID()].Add(t.Amount())
		combined = combined.Add(t.Amount())
	}

	out := make([]CategoryTotal, 0, len(order))
	for _, id := range order {
		pct := decimal.Zero
		if combined.IsPositive() {
			pct = totals[id].Div(combined).Mul(hundred).Round(2)
		}
		out = append(out, CategoryTotal{
			ID:         id,
			Name:       b.categorySnapshot(id).Name,
			Total:      totals[id],
			Percentage: pct,
		})
	}
	return out
}

// categorySnapshot resolves the live category, falling back to a bare id
// carrier when a transaction references a category that no longer exists.
func (b *Budget) categorySnapshot(id string) Category {
	if c, ok := b.categories.GetCategory(id); ok {
		return c
	}
	return Category{ID: id, Name: id}
}

// MonthlyBreakdown computes the summary over one calendar month, from day 1
// 00:00:00 through the last day 23:59:59.
func (b *Budget) MonthlyBreakdown(year int, month time.Month) BudgetSummary {
	start, end := util.MonthBounds(year, month)
	return summarize(b.TransactionsByDateRange(start, end))
}

// TopExpenses returns the expense transactions sorted by amount descending,
// truncated to limit. Non-positive limits fall back to 5.
func (b *Budget) TopExpenses(limit int) []*Transaction {
	if limit <= 0 {
		limit = 5
	}
	expenses := b.TransactionsByType(TransactionTypeExpense)
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount().GreaterThan(expenses[j].Amount())
	})
	if len(expenses) > limit {
		expenses = expenses[:limit]
	}
	return expenses
}

// EssentialExpenses returns the expenses in non-discretionary categories.
func (b *Budget) EssentialExpenses() []*Transaction {
	return b.filterTransactions(func(t *Transaction) bool {
		return t.IsExpense() && t.IsEssential()
	})
}

// DiscretionaryExpenses returns the expenses outside the essential set.
func (b *Budget) DiscretionaryExpenses() []*Transaction {
	return b.filterTransactions(func(t *Transaction) bool {
		return t.IsExpense() && t.IsDiscretionary()
	})
}

// MonthlyIncomeData sums income into twelve month-of-year buckets (0=Jan).
// Transactions from different years land in the same bucket; chart consumers
// rely on this exact shape.
func (b *Budget) MonthlyIncomeData() []decimal.Decimal {
	return b.monthlyData(TransactionTypeIncome)
}

// MonthlyExpenseData is the expense counterpart of MonthlyIncomeData.
func (b *Budget) MonthlyExpenseData() []decimal.Decimal {
	return b.monthlyData(TransactionTypeExpense)
}

func (b *Budget) monthlyData(txType TransactionType) []decimal.Decimal {
	data := make([]decimal.Decimal, 12)
	for i := range data {
		data[i] = decimal.Zero
	}
	for _, t := range b.transactions {
		if t.Type() != txType {
			continue
		}
		m := int(t.Date().Month()) - 1
		data[m] = data[m].Add(t.Amount())
	}
	return data
}

// TransactionCount returns the number of transactions in the budget.
func (b *Budget) TransactionCount() int {
	return len(b.transactions)
}

// ClearAllTransactions drops every transaction, keeping categories intact.
func (b *Budget) ClearAllTransactions() {
	b.transactions = nil
}

// Export reduces the aggregate to its persisted document form.
func (b *Budget) Export() BudgetDocument {
	cats := b.categories.ExportCategories()
	doc := BudgetDocument{
		ID:           b.id,
		Name:         b.name,
		Description:  b.description,
		Limit:        b.limit.InexactFloat64(),
		Categories:   &cats,
		Transactions: make([]TransactionDocument, 0, len(b.transactions)),
	}
	for _, t := range b.transactions {
		doc.Transactions = append(doc.Transactions, t.Document())
	}
	return doc
}

// ExportJSON marshals the exported document.
func (b *Budget) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(b.Export(), "", "  ")
}

// Import replaces the aggregate's contents with the document's: identity
// fields only when present, the limit (defaulting to 1000 when absent),
// categories when provided, and the transaction list unconditionally.
// Transactions whose category id cannot be resolved in the updated manager
// are dropped and logged; that is not a failure.
func (b *Budget) Import(doc BudgetDocument) {
	if doc.ID != "" {
		b.id = doc.ID
	}
	if doc.Name != "" {
		b.name = doc.Name
	}
	if doc.Description != "" {
		b.description = doc.Description
	}
	if doc.Limit != 0 {
		b.limit = decimal.NewFromFloat(doc.Limit)
	} else {
		b.limit = DefaultLimit
	}

	if doc.Categories != nil {
		if !b.categories.ImportCategories(*doc.Categories) {
			log.Warn().Str("budget_id", b.id).Msg("Category import skipped: malformed categories document")
		}
	}

	b.transactions = nil
	dropped := 0
	for _, td := range doc.Transactions {
		if _, ok := b.categories.GetCategory(td.CategoryID); !ok {
			dropped++
			log.Warn().
				Str("budget_id", b.id).
				Str("transaction_id", td.ID).
				Str("category_id", td.CategoryID).
				Msg("Dropping transaction: category not found")
			continue
		}

		amount := decimal.NewFromFloat(td.Amount)
		var t *Transaction
		if td.Type == TransactionTypeIncome {
			t = NewIncome(td.ID, td.Name, td.Description, amount, td.Date, td.CategoryID)
		} else {
			t = NewExpense(td.ID, td.Name, td.Description, amount, td.Date, td.CategoryID)
		}
		b.transactions = append(b.transactions, t)
	}

	log.Info().
		Str("budget_id", b.id).
		Int("transactions", len(b.transactions)).
		Int("dropped", dropped).
		Msg("Budget imported")
}

// ImportJSON parses and applies a persisted document. The whole document is
// parsed before any state changes, so a malformed payload returns false and
// leaves the budget untouched.
func (b *Budget) ImportJSON(data []byte) bool {
	var doc BudgetDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Error().Err(err).Str("budget_id", b.id).Msg("Budget import failed: malformed document")
		return false
	}
	b.Import(doc)
	return true
}
