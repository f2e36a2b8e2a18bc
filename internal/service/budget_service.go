package service

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/websocket"
)

// BudgetService owns the in-memory budget registry and coordinates all
// mutations. It publishes change events to subscribed clients through the
// websocket hub.
type BudgetService struct {
	mu           sync.RWMutex
	budgets      map[string]*domain.Budget
	order        []string
	publisher    websocket.EventPublisher
	defaultLimit decimal.Decimal
}

// NewBudgetService creates a new BudgetService. Budgets created without an
// explicit limit get defaultLimit; a non-positive value falls back to the
// built-in default.
func NewBudgetService(publisher websocket.EventPublisher, defaultLimit decimal.Decimal) *BudgetService {
	if publisher == nil {
		publisher = &websocket.NoOpPublisher{}
	}
	if !defaultLimit.IsPositive() {
		defaultLimit = domain.DefaultLimit
	}
	return &BudgetService{
		budgets:      make(map[string]*domain.Budget),
		publisher:    publisher,
		defaultLimit: defaultLimit,
	}
}

// CreateBudgetInput holds the input for creating a budget
type CreateBudgetInput struct {
	Name        string
	Description string
	Limit       *decimal.Decimal
}

// BudgetInfo is a point-in-time snapshot of a budget's identity and counts.
// The service hands these out instead of live aggregates so that callers
// never read budget state outside the service lock.
type BudgetInfo struct {
	ID               string
	Name             string
	Description      string
	Limit            decimal.Decimal
	TransactionCount int
	CategoryCount    int
}

func budgetInfo(b *domain.Budget) BudgetInfo {
	return BudgetInfo{
		ID:               b.ID(),
		Name:             b.Name(),
		Description:      b.Description(),
		Limit:            b.Limit(),
		TransactionCount: b.TransactionCount(),
		CategoryCount:    len(b.Categories().AllCategories()),
	}
}

// cloneTransaction returns a detached copy safe to read after the service
// lock is released.
func cloneTransaction(tx *domain.Transaction) *domain.Transaction {
	c := *tx
	return &c
}

func cloneTransactions(txs []*domain.Transaction) []*domain.Transaction {
	out := make([]*domain.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = cloneTransaction(tx)
	}
	return out
}

// CreateBudget creates a new budget seeded with the default categories
func (s *BudgetService) CreateBudget(input CreateBudgetInput) (BudgetInfo, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return BudgetInfo{}, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return BudgetInfo{}, domain.ErrNameTooLong
	}

	budget := domain.NewBudget(uuid.New().String(), name, strings.TrimSpace(input.Description), nil)
	limit := s.defaultLimit
	if input.Limit != nil {
		limit = *input.Limit
	}
	if err := budget.SetLimit(limit); err != nil {
		return BudgetInfo{}, err
	}
	info := budgetInfo(budget)

	s.mu.Lock()
	s.budgets[budget.ID()] = budget
	s.order = append(s.order, budget.ID())
	s.mu.Unlock()

	log.Info().Str("budget_id", info.ID).Str("name", name).Msg("Budget created")
	return info, nil
}

// GetBudget returns a snapshot of the budget with the given id
func (s *BudgetService) GetBudget(id string) (BudgetInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(id)
	if err != nil {
		return BudgetInfo{}, err
	}
	return budgetInfo(budget), nil
}

func (s *BudgetService) getLocked(id string) (*domain.Budget, error) {
	budget, ok := s.budgets[id]
	if !ok {
		return nil, domain.ErrBudgetNotFound
	}
	return budget, nil
}

// ListBudgets returns snapshots of all budgets in creation order
func (s *BudgetService) ListBudgets() []BudgetInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]BudgetInfo, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, budgetInfo(s.budgets[id]))
	}
	return out
}

// DeleteBudget removes the budget with the given id
func (s *BudgetService) DeleteBudget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[id]; !ok {
		return domain.ErrBudgetNotFound
	}
	delete(s.budgets, id)
	for i, bid := range s.order {
		if bid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// SetLimit updates a budget's spending limit
func (s *BudgetService) SetLimit(budgetID string, limit decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return err
	}
	return budget.SetLimit(limit)
}

// TransactionInput holds the input for creating a transaction
type TransactionInput struct {
	ID          string
	Name        string
	Description string
	Amount      decimal.Decimal
	Date        time.Time
	CategoryID  string
	Type        domain.TransactionType
}

// AddTransaction validates and records a transaction against a budget
func (s *BudgetService) AddTransaction(budgetID string, input TransactionInput) (*domain.Transaction, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if !domain.ValidTransactionType(input.Type) {
		return nil, domain.ErrInvalidTransactionType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	if _, ok := budget.Categories().GetCategory(input.CategoryID); !ok {
		return nil, domain.ErrCategoryNotFound
	}

	id := input.ID
	if id == "" {
		id = uuid.New().String()
	}
	date := input.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	var tx *domain.Transaction
	if input.Type == domain.TransactionTypeIncome {
		tx = domain.NewIncome(id, name, strings.TrimSpace(input.Description), input.Amount, date, input.CategoryID)
	} else {
		tx = domain.NewExpense(id, name, strings.TrimSpace(input.Description), input.Amount, date, input.CategoryID)
	}
	budget.AddTransaction(tx)

	s.publisher.Publish(budgetID, websocket.TransactionCreated(tx.Document()))
	s.checkLimitLocked(budget)

	return cloneTransaction(tx), nil
}

// TransactionUpdate holds optional changes to an existing transaction.
// Nil fields are left untouched. The transaction type is immutable.
type TransactionUpdate struct {
	Name        *string
	Description *string
	Amount      *decimal.Decimal
	Date        *time.Time
	CategoryID  *string
}

// UpdateTransaction applies the given changes to a transaction
func (s *BudgetService) UpdateTransaction(budgetID, txID string, update TransactionUpdate) (*domain.Transaction, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, domain.ErrNameRequired
		}
		if len(trimmed) > domain.MaxNameLength {
			return nil, domain.ErrNameTooLong
		}
		update.Name = &trimmed
	}
	if update.Amount != nil && !update.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	tx, ok := budget.GetTransaction(txID)
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if update.CategoryID != nil {
		if _, ok := budget.Categories().GetCategory(*update.CategoryID); !ok {
			return nil, domain.ErrCategoryNotFound
		}
	}

	if update.Name != nil {
		tx.SetName(*update.Name)
	}
	if update.Description != nil {
		tx.SetDescription(strings.TrimSpace(*update.Description))
	}
	if update.Amount != nil {
		tx.SetAmount(*update.Amount)
	}
	if update.Date != nil {
		tx.SetDate(*update.Date)
	}
	if update.CategoryID != nil {
		tx.SetCategory(*update.CategoryID)
	}

	s.publisher.Publish(budgetID, websocket.TransactionUpdated(tx.Document()))
	s.checkLimitLocked(budget)

	return cloneTransaction(tx), nil
}

// RemoveTransaction deletes a transaction from a budget
func (s *BudgetService) RemoveTransaction(budgetID, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return err
	}
	if !budget.RemoveTransaction(txID) {
		return domain.ErrTransactionNotFound
	}

	s.publisher.Publish(budgetID, websocket.TransactionDeleted(map[string]string{"id": txID}))
	return nil
}

// GetTransaction returns a single transaction from a budget
func (s *BudgetService) GetTransaction(budgetID, txID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	tx, ok := budget.GetTransaction(txID)
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	return cloneTransaction(tx), nil
}

// TransactionFilter narrows transaction listings. Zero-valued fields are
// ignored.
type TransactionFilter struct {
	Type       *domain.TransactionType
	CategoryID string
	From       *time.Time
	To         *time.Time
}

// Transactions lists a budget's transactions, optionally filtered
func (s *BudgetService) Transactions(budgetID string, filter TransactionFilter) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}

	txs := budget.AllTransactions()
	out := make([]*domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Type != nil && tx.Type() != *filter.Type {
			continue
		}
		if filter.CategoryID != "" && tx.CategoryID() != filter.CategoryID {
			continue
		}
		if filter.From != nil && tx.Date().Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.Date().After(*filter.To) {
			continue
		}
		out = append(out, cloneTransaction(tx))
	}
	return out, nil
}

// CategoryInput holds the input for creating a custom category
type CategoryInput struct {
	Name  string
	Type  domain.CategoryType
	Color string
	Icon  string
}

// CreateCategory adds a custom category to a budget
func (s *BudgetService) CreateCategory(budgetID string, input CategoryInput) (domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return domain.Category{}, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return domain.Category{}, domain.ErrNameTooLong
	}
	if !domain.ValidCategoryType(input.Type) {
		return domain.Category{}, domain.ErrInvalidCategoryType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return domain.Category{}, err
	}
	if budget.Categories().IsCategoryNameTaken(name, "") {
		return domain.Category{}, domain.ErrNameTaken
	}

	category := budget.Categories().CreateCustomCategory(name, input.Type, input.Color, input.Icon)
	s.publisher.Publish(budgetID, websocket.CategoryCreated(category))
	return category, nil
}

// UpdateCategory applies the given changes to a category
func (s *BudgetService) UpdateCategory(budgetID, categoryID string, update domain.CategoryUpdate) (domain.Category, error) {
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return domain.Category{}, domain.ErrNameRequired
		}
		if len(trimmed) > domain.MaxNameLength {
			return domain.Category{}, domain.ErrNameTooLong
		}
		update.Name = &trimmed
	}
	if update.Type != nil && !domain.ValidCategoryType(*update.Type) {
		return domain.Category{}, domain.ErrInvalidCategoryType
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return domain.Category{}, err
	}
	if update.Name != nil && budget.Categories().IsCategoryNameTaken(*update.Name, categoryID) {
		return domain.Category{}, domain.ErrNameTaken
	}
	if !budget.Categories().UpdateCategory(categoryID, update) {
		return domain.Category{}, domain.ErrCategoryNotFound
	}

	category, _ := budget.Categories().GetCategory(categoryID)
	s.publisher.Publish(budgetID, websocket.CategoryUpdated(category))
	return category, nil
}

// DeleteCategory removes a custom category from a budget
func (s *BudgetService) DeleteCategory(budgetID, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return err
	}
	category, ok := budget.Categories().GetCategory(categoryID)
	if !ok {
		return domain.ErrCategoryNotFound
	}
	if category.IsDefault {
		return domain.ErrDefaultCategory
	}
	budget.Categories().DeleteCategory(categoryID)

	s.publisher.Publish(budgetID, websocket.CategoryDeleted(map[string]string{"id": categoryID}))
	return nil
}

// DeactivateCategory hides a category without deleting it
func (s *BudgetService) DeactivateCategory(budgetID, categoryID string) error {
	return s.setCategoryActive(budgetID, categoryID, false)
}

// ActivateCategory restores a deactivated category
func (s *BudgetService) ActivateCategory(budgetID, categoryID string) error {
	return s.setCategoryActive(budgetID, categoryID, true)
}

func (s *BudgetService) setCategoryActive(budgetID, categoryID string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return err
	}

	var ok bool
	if active {
		ok = budget.Categories().ActivateCategory(categoryID)
	} else {
		ok = budget.Categories().DeactivateCategory(categoryID)
	}
	if !ok {
		return domain.ErrCategoryNotFound
	}

	category, _ := budget.Categories().GetCategory(categoryID)
	if active {
		s.publisher.Publish(budgetID, websocket.CategoryActivated(category))
	} else {
		s.publisher.Publish(budgetID, websocket.CategoryDeactivated(category))
	}
	return nil
}

// CategoryFilter narrows category listings
type CategoryFilter struct {
	Type       *domain.CategoryType
	ActiveOnly bool
	Search     string
}

// Categories lists a budget's categories, optionally filtered
func (s *BudgetService) Categories(budgetID string, filter CategoryFilter) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}

	manager := budget.Categories()
	if filter.Search != "" {
		return manager.SearchCategories(filter.Search), nil
	}
	if filter.Type != nil {
		return manager.CategoriesByType(*filter.Type), nil
	}
	if filter.ActiveOnly {
		return manager.ActiveCategories(), nil
	}
	return manager.AllCategories(), nil
}

// Summary returns the aggregate figures for a budget
func (s *BudgetService) Summary(budgetID string) (domain.BudgetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	return budget.Summary(), nil
}

// MonthlyBreakdown returns the aggregate figures for a single month
func (s *BudgetService) MonthlyBreakdown(budgetID string, year int, month time.Month) (domain.BudgetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return domain.BudgetSummary{}, err
	}
	return budget.MonthlyBreakdown(year, month), nil
}

// CategoryTotals returns per-category totals across all transactions
func (s *BudgetService) CategoryTotals(budgetID string) ([]domain.CategoryTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return budget.CategoryTotals(), nil
}

// IncomeByCategory returns per-category income summaries
func (s *BudgetService) IncomeByCategory(budgetID string) ([]domain.CategorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return budget.IncomeByCategory(), nil
}

// ExpensesByCategory returns per-category expense summaries
func (s *BudgetService) ExpensesByCategory(budgetID string) ([]domain.CategorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return budget.ExpensesByCategory(), nil
}

// TopExpenses returns the largest expenses, capped at limit
func (s *BudgetService) TopExpenses(budgetID string, limit int) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return cloneTransactions(budget.TopExpenses(limit)), nil
}

// EssentialExpenses returns expenses in essential categories
func (s *BudgetService) EssentialExpenses(budgetID string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return cloneTransactions(budget.EssentialExpenses()), nil
}

// DiscretionaryExpenses returns expenses outside essential categories
func (s *BudgetService) DiscretionaryExpenses(budgetID string) ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return cloneTransactions(budget.DiscretionaryExpenses()), nil
}

// MonthlyTrend holds per-month income and expense series for chart rendering
type MonthlyTrend struct {
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// MonthlyTrendData returns 12-month income and expense series
func (s *BudgetService) MonthlyTrendData(budgetID string) (MonthlyTrend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return MonthlyTrend{}, err
	}
	return MonthlyTrend{
		Income:   budget.MonthlyIncomeData(),
		Expenses: budget.MonthlyExpenseData(),
	}, nil
}

// ClearTransactions removes every transaction from a budget
func (s *BudgetService) ClearTransactions(budgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return err
	}
	budget.ClearAllTransactions()
	return nil
}

// Export serializes a budget to its document form
func (s *BudgetService) Export(budgetID string) (domain.BudgetDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return domain.BudgetDocument{}, err
	}
	return budget.Export(), nil
}

// ExportJSON serializes a budget to indented JSON
func (s *BudgetService) ExportJSON(budgetID string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return nil, err
	}
	return budget.ExportJSON()
}

// ImportJSON replaces a budget's state from exported JSON. The budget is
// left untouched if the payload does not parse.
func (s *BudgetService) ImportJSON(budgetID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	budget, err := s.getLocked(budgetID)
	if err != nil {
		return err
	}
	if !budget.ImportJSON(data) {
		return domain.ErrInvalidDocument
	}

	s.publisher.Publish(budgetID, websocket.BudgetImported(map[string]interface{}{
		"id":               budget.ID(),
		"transactionCount": budget.TransactionCount(),
	}))
	s.checkLimitLocked(budget)
	return nil
}

// LimitAlert is the payload broadcast when expenses cross the budget limit.
// It marks the trigger condition; delivery of user-facing notifications is
// left to consumers.
type LimitAlert struct {
	BudgetID      string          `json:"budgetId"`
	Limit         decimal.Decimal `json:"limit"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
}

func (s *BudgetService) checkLimitLocked(budget *domain.Budget) {
	expenses := budget.TotalExpenses()
	if expenses.LessThanOrEqual(budget.Limit()) {
		return
	}

	log.Warn().
		Str("budget_id", budget.ID()).
		Str("limit", budget.Limit().String()).
		Str("total_expenses", expenses.String()).
		Msg("Budget limit exceeded")

	s.publisher.Publish(budget.ID(), websocket.BudgetLimitExceeded(LimitAlert{
		BudgetID:      budget.ID(),
		Limit:         budget.Limit(),
		TotalExpenses: expenses,
	}))
}
