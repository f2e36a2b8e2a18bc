package domain

import (
	"time"

	"github.com/centavo-app/centavo-backend/internal/util"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// ValidTransactionType reports whether t is income or expense.
func ValidTransactionType(t TransactionType) bool {
	return t == TransactionTypeIncome || t == TransactionTypeExpense
}

// Priority ranks how deferrable an expense is.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// essentialCategoryIDs are the default expense categories treated as
// non-discretionary. A custom category is never essential.
var essentialCategoryIDs = map[string]bool{
	CategoryHousing:    true,
	CategoryUtilities:  true,
	CategoryFood:       true,
	CategoryTransport:  true,
	CategoryHealthcare: true,
}

var mediumPriorityCategoryIDs = map[string]bool{
	CategoryEducation:    true,
	CategorySubscription: true,
}

// recurringCategoryIDs are the default income categories assumed to repeat.
var recurringCategoryIDs = map[string]bool{
	CategorySalary:     true,
	CategoryFreelance:  true,
	CategoryInvestment: true,
	CategoryBusiness:   true,
}

// Transaction is a single dated monetary event, either income or expense.
// The type is fixed at construction; every other field is freely mutable and
// unvalidated here, validation happens in the calling workflow. A transaction
// holds only a category id; the owning Budget resolves the live Category
// through its CategoryManager.
type Transaction struct {
	id          string
	name        string
	description string
	amount      decimal.Decimal
	date        time.Time
	categoryID  string
	txType      TransactionType
}

// NewIncome constructs an income transaction.
func NewIncome(id, name, description string, amount decimal.Decimal, date time.Time, categoryID string) *Transaction {
	return newTransaction(id, name, description, amount, date, categoryID, TransactionTypeIncome)
}

// NewExpense constructs an expense transaction.
func NewExpense(id, name, description string, amount decimal.Decimal, date time.Time, categoryID string) *Transaction {
	return newTransaction(id, name, description, amount, date, categoryID, TransactionTypeExpense)
}

func newTransaction(id, name, description string, amount decimal.Decimal, date time.Time, categoryID string, txType TransactionType) *Transaction {
	return &Transaction{
		id:          id,
		name:        name,
		description: description,
		amount:      amount,
		date:        date,
		categoryID:  categoryID,
		txType:      txType,
	}
}

func (t *Transaction) ID() string               { return t.id }
func (t *Transaction) Name() string             { return t.name }
func (t *Transaction) Description() string      { return t.description }
func (t *Transaction) Amount() decimal.Decimal  { return t.amount }
func (t *Transaction) Date() time.Time          { return t.date }
func (t *Transaction) CategoryID() string       { return t.categoryID }
func (t *Transaction) Type() TransactionType    { return t.txType }

func (t *Transaction) SetID(id string)                  { t.id = id }
func (t *Transaction) SetName(name string)              { t.name = name }
func (t *Transaction) SetDescription(d string)          { t.description = d }
func (t *Transaction) SetAmount(amount decimal.Decimal) { t.amount = amount }
func (t *Transaction) SetDate(date time.Time)           { t.date = date }
func (t *Transaction) SetCategory(categoryID string)    { t.categoryID = categoryID }

func (t *Transaction) IsIncome() bool  { return t.txType == TransactionTypeIncome }
func (t *Transaction) IsExpense() bool { return t.txType == TransactionTypeExpense }

// FormattedAmount renders the amount with the fixed two-decimal money rule.
func (t *Transaction) FormattedAmount() string {
	return "$" + t.amount.StringFixed(2)
}

// FormattedDate renders the date for display.
func (t *Transaction) FormattedDate() string {
	return t.date.Format("1/2/2006")
}

// IsEssential reports whether an expense belongs to one of the
// non-discretionary default categories.
func (t *Transaction) IsEssential() bool {
	return essentialCategoryIDs[t.categoryID]
}

// IsDiscretionary is the complement of IsEssential.
func (t *Transaction) IsDiscretionary() bool {
	return !t.IsEssential()
}

// Priority ranks an expense: high for the essential categories, medium for
// education and subscriptions, low otherwise.
func (t *Transaction) Priority() Priority {
	switch {
	case t.IsEssential():
		return PriorityHigh
	case mediumPriorityCategoryIDs[t.categoryID]:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// IsRecurring reports whether an income belongs to one of the default
// categories assumed to repeat.
func (t *Transaction) IsRecurring() bool {
	return recurringCategoryIDs[t.categoryID]
}

// MonthlyEquivalent amortizes the amount over the whole calendar months
// elapsed between the transaction date and now. When less than one month has
// elapsed the raw amount is returned unchanged.
func (t *Transaction) MonthlyEquivalent(now time.Time) decimal.Decimal {
	months := util.WholeMonthsBetween(t.date, now)
	if months > 0 {
		return t.amount.Div(decimal.NewFromInt(int64(months)))
	}
	return t.amount
}

// Document reduces the transaction to its seven-field wire form.
func (t *Transaction) Document() TransactionDocument {
	return TransactionDocument{
		ID:          t.id,
		Name:        t.name,
		Description: t.description,
		Amount:      t.amount.InexactFloat64(),
		Date:        t.date,
		CategoryID:  t.categoryID,
		Type:        t.txType,
	}
}
