package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestBudget() *Budget {
	return NewBudget("b-1", "Household", "Monthly spend", nil)
}

func seedTransactions(b *Budget) {
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)

	b.AddTransaction(NewIncome("tx-1", "Salary", "", decimal.NewFromInt(3000), jan, CategorySalary))
	b.AddTransaction(NewExpense("tx-2", "Rent", "", decimal.NewFromInt(1200), jan, CategoryHousing))
	b.AddTransaction(NewExpense("tx-3", "Dining", "", decimal.NewFromInt(600), feb, CategoryFood))
	b.AddTransaction(NewExpense("tx-4", "Cinema", "", decimal.NewFromInt(200), feb, CategoryEntertain))
}

func TestNewBudget_Defaults(t *testing.T) {
	b := newTestBudget()

	if !b.Limit().Equal(DefaultLimit) {
		t.Errorf("Expected default limit 1000, got %s", b.Limit())
	}
	if len(b.Categories().AllCategories()) != 15 {
		t.Errorf("Expected fresh budget to carry 15 default categories")
	}
	if b.TransactionCount() != 0 {
		t.Errorf("Fresh budget should have no transactions")
	}
}

func TestSetLimit(t *testing.T) {
	b := newTestBudget()

	if err := b.SetLimit(decimal.NewFromInt(2500)); err != nil {
		t.Fatalf("Positive limit should be accepted: %v", err)
	}
	if b.Limit().String() != "2500" {
		t.Errorf("Limit = %s, want 2500", b.Limit())
	}

	if err := b.SetLimit(decimal.Zero); err != ErrInvalidLimit {
		t.Errorf("Zero limit should be rejected, got %v", err)
	}
	if err := b.SetLimit(decimal.NewFromInt(-5)); err != ErrInvalidLimit {
		t.Errorf("Negative limit should be rejected, got %v", err)
	}
	if b.Limit().String() != "2500" {
		t.Error("Rejected limit must leave the previous value in place")
	}
}

func TestAddRemoveGetTransaction(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	if b.TransactionCount() != 4 {
		t.Fatalf("Expected 4 transactions, got %d", b.TransactionCount())
	}

	tx, ok := b.GetTransaction("tx-2")
	if !ok || tx.Name() != "Rent" {
		t.Error("GetTransaction should find tx-2")
	}
	if _, ok := b.GetTransaction("missing"); ok {
		t.Error("Unknown id should not resolve")
	}

	if !b.RemoveTransaction("tx-2") {
		t.Error("Removing an existing transaction should report true")
	}
	if b.RemoveTransaction("tx-2") {
		t.Error("Removing twice should report false")
	}
	if b.TransactionCount() != 3 {
		t.Errorf("Expected 3 transactions after removal, got %d", b.TransactionCount())
	}

	// Remaining order is preserved
	all := b.AllTransactions()
	if all[0].ID() != "tx-1" || all[1].ID() != "tx-3" || all[2].ID() != "tx-4" {
		t.Error("Removal should preserve the order of remaining transactions")
	}
}

func TestTransactionFilters(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	if got := len(b.TransactionsByType(TransactionTypeExpense)); got != 3 {
		t.Errorf("Expected 3 expenses, got %d", got)
	}
	if got := len(b.TransactionsByCategory(CategoryHousing)); got != 1 {
		t.Errorf("Expected 1 housing transaction, got %d", got)
	}

	// Date range bounds are inclusive
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	if got := len(b.TransactionsByDateRange(start, end)); got != 4 {
		t.Errorf("Inclusive range should catch all 4, got %d", got)
	}

	narrow := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	if got := len(b.TransactionsByDateRange(narrow, end)); got != 2 {
		t.Errorf("Expected 2 February transactions, got %d", got)
	}
}

func TestTotalsAndSavingsRate(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	if got := b.TotalIncome().String(); got != "3000" {
		t.Errorf("TotalIncome = %s, want 3000", got)
	}
	if got := b.TotalExpenses().String(); got != "2000" {
		t.Errorf("TotalExpenses = %s, want 2000", got)
	}
	if got := b.NetAmount().String(); got != "1000" {
		t.Errorf("NetAmount = %s, want 1000", got)
	}
	if got := b.SavingsRate().StringFixed(2); got != "33.33" {
		t.Errorf("SavingsRate = %s, want 33.33", got)
	}
}

func TestSavingsRate_NoIncome(t *testing.T) {
	b := newTestBudget()
	b.AddTransaction(NewExpense("tx-1", "Rent", "", decimal.NewFromInt(500), time.Now(), CategoryHousing))

	if !b.SavingsRate().IsZero() {
		t.Errorf("SavingsRate with no income should be 0, got %s", b.SavingsRate())
	}
}

func TestSummary(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	s := b.Summary()
	if s.TotalIncome.String() != "3000" || s.TotalExpenses.String() != "2000" {
		t.Errorf("Summary totals mismatch: %+v", s)
	}
	if s.NetAmount.String() != "1000" {
		t.Errorf("Summary net = %s, want 1000", s.NetAmount)
	}
	if s.IncomeCount != 1 || s.ExpenseCount != 3 {
		t.Errorf("Summary counts mismatch: income %d expense %d", s.IncomeCount, s.ExpenseCount)
	}
}

func TestExpensesByCategory_Percentages(t *testing.T) {
	b := newTestBudget()
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	b.AddTransaction(NewExpense("tx-1", "Rent", "", decimal.NewFromInt(200), jan, CategoryHousing))
	b.AddTransaction(NewExpense("tx-2", "Groceries", "", decimal.NewFromInt(100), jan, CategoryFood))

	summaries := b.ExpensesByCategory()
	if len(summaries) != 2 {
		t.Fatalf("Expected 2 category summaries, got %d", len(summaries))
	}

	// First-use order is preserved
	if summaries[0].Category.ID != CategoryHousing {
		t.Errorf("Expected housing first, got %s", summaries[0].Category.ID)
	}
	if got := summaries[0].Percentage.StringFixed(2); got != "66.67" {
		t.Errorf("Housing percentage = %s, want 66.67", got)
	}
	if got := summaries[1].Percentage.StringFixed(2); got != "33.33" {
		t.Errorf("Food percentage = %s, want 33.33", got)
	}
	if summaries[0].TransactionCount != 1 {
		t.Errorf("Expected 1 transaction in housing bucket")
	}
}

func TestCategoryTotals_MixedTypePercentages(t *testing.T) {
	b := newTestBudget()
	jan := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	b.AddTransaction(NewIncome("tx-1", "Paycheck", "", decimal.NewFromInt(100), jan, CategorySalary))
	b.AddTransaction(NewExpense("tx-2", "Groceries", "", decimal.NewFromInt(50), jan, CategoryFood))

	totals := b.CategoryTotals()
	if len(totals) != 2 {
		t.Fatalf("Expected 2 totals, got %d", len(totals))
	}

	// Percentages are relative to the combined 150, regardless of type
	if totals[0].ID != CategorySalary {
		t.Errorf("Expected salary first, got %s", totals[0].ID)
	}
	if got := totals[0].Percentage.StringFixed(2); got != "66.67" {
		t.Errorf("Salary percentage = %s, want 66.67", got)
	}
	if totals[1].ID != CategoryFood {
		t.Errorf("Expected food second, got %s", totals[1].ID)
	}
	if got := totals[1].Percentage.StringFixed(2); got != "33.33" {
		t.Errorf("Food percentage = %s, want 33.33", got)
	}
	if totals[0].Total.String() != "100" || totals[1].Total.String() != "50" {
		t.Errorf("Totals mismatch: %+v", totals)
	}
}

func TestCategoryTotals_UnknownCategoryFallback(t *testing.T) {
	b := newTestBudget()
	b.AddTransaction(NewExpense("tx-1", "Mystery", "", decimal.NewFromInt(50), time.Now(), "ghost"))

	totals := b.CategoryTotals()
	if len(totals) != 1 {
		t.Fatalf("Expected 1 total, got %d", len(totals))
	}
	if totals[0].ID != "ghost" || totals[0].Name != "ghost" {
		t.Errorf("Unknown category should fall back to its id, got %+v", totals[0])
	}
}

func TestMonthlyBreakdown(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	jan := b.MonthlyBreakdown(2025, time.January)
	if jan.TotalIncome.String() != "3000" {
		t.Errorf("January income = %s, want 3000", jan.TotalIncome)
	}
	if jan.TotalExpenses.String() != "1200" {
		t.Errorf("January expenses = %s, want 1200", jan.TotalExpenses)
	}

	feb := b.MonthlyBreakdown(2025, time.February)
	if feb.TotalExpenses.String() != "800" {
		t.Errorf("February expenses = %s, want 800", feb.TotalExpenses)
	}
	if feb.IncomeCount != 0 {
		t.Errorf("February should have no income, got %d", feb.IncomeCount)
	}

	empty := b.MonthlyBreakdown(2024, time.January)
	if empty.ExpenseCount != 0 || !empty.TotalExpenses.IsZero() {
		t.Error("Months with no transactions should report zeros")
	}
}

func TestTopExpenses(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	top := b.TopExpenses(2)
	if len(top) != 2 {
		t.Fatalf("Expected 2 top expenses, got %d", len(top))
	}
	if top[0].Name() != "Rent" || top[1].Name() != "Dining" {
		t.Errorf("Top expenses should be sorted by amount desc, got %s, %s", top[0].Name(), top[1].Name())
	}

	// Non-positive limit falls back to 5
	all := b.TopExpenses(0)
	if len(all) != 3 {
		t.Errorf("Expected all 3 expenses under default cap, got %d", len(all))
	}
}

func TestEssentialAndDiscretionaryExpenses(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	essential := b.EssentialExpenses()
	if len(essential) != 2 {
		t.Fatalf("Expected rent and dining as essential, got %d", len(essential))
	}
	discretionary := b.DiscretionaryExpenses()
	if len(discretionary) != 1 || discretionary[0].Name() != "Cinema" {
		t.Errorf("Expected cinema as discretionary, got %+v", discretionary)
	}
}

func TestMonthlyData_YearsCollapse(t *testing.T) {
	b := newTestBudget()
	b.AddTransaction(NewExpense("tx-1", "Rent 2024", "", decimal.NewFromInt(500),
		time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), CategoryHousing))
	b.AddTransaction(NewExpense("tx-2", "Rent 2025", "", decimal.NewFromInt(300),
		time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), CategoryHousing))

	data := b.MonthlyExpenseData()
	if len(data) != 12 {
		t.Fatalf("Expected 12 buckets, got %d", len(data))
	}
	// Same calendar month across years lands in one bucket
	if data[0].String() != "800" {
		t.Errorf("January bucket = %s, want 800", data[0])
	}
	for i := 1; i < 12; i++ {
		if !data[i].IsZero() {
			t.Errorf("Bucket %d should be zero, got %s", i, data[i])
		}
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)
	b.Categories().CreateCustomCategory("Pets", CategoryTypeExpense, "#AABBCC", "")
	if err := b.SetLimit(decimal.NewFromInt(2500)); err != nil {
		t.Fatal(err)
	}

	data, err := b.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	restored := NewBudget("other", "Other", "", nil)
	if !restored.ImportJSON(data) {
		t.Fatal("Import of a valid export should succeed")
	}

	if restored.ID() != b.ID() || restored.Name() != b.Name() {
		t.Error("Identity fields should be restored")
	}
	if !restored.Limit().Equal(b.Limit()) {
		t.Errorf("Limit should round-trip, got %s", restored.Limit())
	}
	if restored.TransactionCount() != b.TransactionCount() {
		t.Errorf("Expected %d transactions, got %d", b.TransactionCount(), restored.TransactionCount())
	}
	if _, ok := restored.Categories().GetCategory("custom_1"); !ok {
		t.Error("Custom categories should round-trip")
	}

	// Derived figures match after the round trip
	a, z := b.Summary(), restored.Summary()
	if !a.TotalIncome.Equal(z.TotalIncome) || !a.TotalExpenses.Equal(z.TotalExpenses) ||
		!a.NetAmount.Equal(z.NetAmount) || a.IncomeCount != z.IncomeCount || a.ExpenseCount != z.ExpenseCount {
		t.Errorf("Summary mismatch after import: %+v vs %+v", a, z)
	}
}

func TestImport_ZeroLimitFallsBack(t *testing.T) {
	b := newTestBudget()
	b.Import(BudgetDocument{ID: "x", Name: "X", Limit: 0})
	if !b.Limit().Equal(DefaultLimit) {
		t.Errorf("Zero limit in document should fall back to 1000, got %s", b.Limit())
	}
}

func TestImport_UnknownCategoryTransactionsDropped(t *testing.T) {
	b := newTestBudget()
	doc := BudgetDocument{
		ID:   "x",
		Name: "X",
		Transactions: []TransactionDocument{
			{ID: "tx-1", Name: "Good", Amount: 10, Date: time.Now(), CategoryID: CategoryFood, Type: TransactionTypeExpense},
			{ID: "tx-2", Name: "Orphan", Amount: 10, Date: time.Now(), CategoryID: "ghost", Type: TransactionTypeExpense},
		},
	}
	b.Import(doc)

	if b.TransactionCount() != 1 {
		t.Errorf("Transactions with unknown categories should be dropped, got %d", b.TransactionCount())
	}
	if _, ok := b.GetTransaction("tx-1"); !ok {
		t.Error("Known-category transaction should survive")
	}
}

func TestImport_UnknownTypeBecomesExpense(t *testing.T) {
	b := newTestBudget()
	doc := BudgetDocument{
		ID:   "x",
		Name: "X",
		Transactions: []TransactionDocument{
			{ID: "tx-1", Name: "Odd", Amount: 10, Date: time.Now(), CategoryID: CategoryFood, Type: "weird"},
		},
	}
	b.Import(doc)

	tx, ok := b.GetTransaction("tx-1")
	if !ok {
		t.Fatal("Transaction should be imported")
	}
	if !tx.IsExpense() {
		t.Error("Unrecognized types should import as expenses")
	}
}

func TestImportJSON_MalformedLeavesStateUntouched(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	if b.ImportJSON([]byte("{not json")) {
		t.Error("Malformed JSON should report false")
	}
	if b.TransactionCount() != 4 {
		t.Errorf("Failed import must leave transactions untouched, got %d", b.TransactionCount())
	}
	if b.Name() != "Household" {
		t.Error("Failed import must leave identity untouched")
	}
}

func TestExportJSON_Shape(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)

	data, err := b.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Export should be valid JSON: %v", err)
	}
	for _, key := range []string{"id", "name", "limit", "categories", "transactions"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("Export missing %q field", key)
		}
	}
}

func TestCategoryRename_ReflectedInReports(t *testing.T) {
	b := newTestBudget()
	b.AddTransaction(NewExpense("tx-1", "Rent", "", decimal.NewFromInt(100), time.Now(), CategoryHousing))

	newName := "Casa"
	b.Categories().UpdateCategory(CategoryHousing, CategoryUpdate{Name: &newName})

	totals := b.CategoryTotals()
	if len(totals) != 1 || totals[0].Name != "Casa" {
		t.Errorf("Reports should resolve the live category name, got %+v", totals)
	}
}

func TestClearAllTransactions(t *testing.T) {
	b := newTestBudget()
	seedTransactions(b)
	b.Categories().CreateCustomCategory("Pets", CategoryTypeExpense, "", "")

	b.ClearAllTransactions()
	if b.TransactionCount() != 0 {
		t.Error("ClearAllTransactions should drop everything")
	}
	if len(b.Categories().AllCategories()) != 16 {
		t.Error("Categories must survive a transaction clear")
	}
}
