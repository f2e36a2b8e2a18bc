package domain

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// CategoryType classifies which side of the ledger a category applies to.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeBoth    CategoryType = "both"
)

// ValidCategoryType reports whether t is one of the known category types.
func ValidCategoryType(t CategoryType) bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense || t == CategoryTypeBoth
}

// Category is a named grouping that tags transactions as income, expense, or
// both. Default categories are seeded in code and can never be deleted.
type Category struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Type      CategoryType `json:"type"`
	Color     string       `json:"color,omitempty"`
	Icon      string       `json:"icon,omitempty"`
	IsDefault bool         `json:"isDefault"`
	IsActive  bool         `json:"isActive"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// CategoryUpdate carries a partial update. Nil fields are left untouched.
type CategoryUpdate struct {
	ID        *string
	Name      *string
	Type      *CategoryType
	Color     *string
	Icon      *string
	IsDefault *bool
	IsActive  *bool
	CreatedAt *time.Time
}

// Default category ids referenced by classification rules and tests.
const (
	CategorySalary       = "salary"
	CategoryFreelance    = "freelance"
	CategoryInvestment   = "investment"
	CategoryBusiness     = "business"
	CategoryOtherIncome  = "other_income"
	CategoryFood         = "food"
	CategoryTransport    = "transportation"
	CategoryHousing      = "housing"
	CategoryUtilities    = "utilities"
	CategoryEntertain    = "entertainment"
	CategoryHealthcare   = "healthcare"
	CategoryEducation    = "education"
	CategoryShopping     = "shopping"
	CategorySubscription = "subscriptions"
	CategoryOtherExpense = "other_expense"
)

// defaultCategories are re-seeded from code on construction and on every
// import, so upgrades to these definitions always take effect.
var defaultCategories = []Category{
	{ID: CategorySalary, Name: "Salary", Type: CategoryTypeIncome, Color: "#4CAF50"},
	{ID: CategoryFreelance, Name: "Freelance", Type: CategoryTypeIncome, Color: "#8BC34A"},
	{ID: CategoryInvestment, Name: "Investment", Type: CategoryTypeIncome, Color: "#CDDC39"},
	{ID: CategoryBusiness, Name: "Business", Type: CategoryTypeIncome, Color: "#FFEB3B"},
	{ID: CategoryOtherIncome, Name: "Other Income", Type: CategoryTypeIncome, Color: "#FFC107"},
	{ID: CategoryFood, Name: "Food & Dining", Type: CategoryTypeExpense, Color: "#FF5722"},
	{ID: CategoryTransport, Name: "Transportation", Type: CategoryTypeExpense, Color: "#795548"},
	{ID: CategoryHousing, Name: "Housing", Type: CategoryTypeExpense, Color: "#607D8B"},
	{ID: CategoryUtilities, Name: "Utilities", Type: CategoryTypeExpense, Color: "#9C27B0"},
	{ID: CategoryEntertain, Name: "Entertainment", Type: CategoryTypeExpense, Color: "#E91E63"},
	{ID: CategoryHealthcare, Name: "Healthcare", Type: CategoryTypeExpense, Color: "#F44336"},
	{ID: CategoryEducation, Name: "Education", Type: CategoryTypeExpense, Color: "#2196F3"},
	{ID: CategoryShopping, Name: "Shopping", Type: CategoryTypeExpense, Color: "#00BCD4"},
	{ID: CategorySubscription, Name: "Subscriptions", Type: CategoryTypeExpense, Color: "#3F51B5"},
	{ID: CategoryOtherExpense, Name: "Other Expense", Type: CategoryTypeExpense, Color: "#9E9E9E"},
}

// randomPalette is offered to custom categories created without a color.
var randomPalette = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
	"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E9",
	"#F8C471", "#82E0AA", "#F1948A", "#85C1E9", "#D7BDE2",
}

// CategoryManager owns every category of a budget, keyed by unique id, plus
// the monotonic counter used to mint custom category ids. It is not safe for
// concurrent use; callers serialize access.
type CategoryManager struct {
	categories   map[string]Category
	order        []string
	nextCustomID int
}

// NewCategoryManager creates a manager seeded with the built-in defaults.
func NewCategoryManager() *CategoryManager {
	m := &CategoryManager{
		categories:   make(map[string]Category),
		nextCustomID: 1,
	}
	m.seedDefaults()
	return m
}

func (m *CategoryManager) seedDefaults() {
	now := time.Now()
	for _, c := range defaultCategories {
		c.IsDefault = true
		c.IsActive = true
		c.CreatedAt = now
		c.UpdatedAt = now
		m.put(c)
	}
}

func (m *CategoryManager) put(c Category) {
	if _, exists := m.categories[c.ID]; !exists {
		m.order = append(m.order, c.ID)
	}
	m.categories[c.ID] = c
}

// CreateCustomCategory mints a new custom category with a fresh custom_<n>
// id. Duplicate names are permitted; callers wanting uniqueness check
// IsCategoryNameTaken first.
func (m *CategoryManager) CreateCustomCategory(name string, ctype CategoryType, color, icon string) Category {
	id := fmt.Sprintf("custom_%d", m.nextCustomID)
	m.nextCustomID++

	if color == "" {
		color = randomPalette[rand.Intn(len(randomPalette))]
	}

	now := time.Now()
	c := Category{
		ID:        id,
		Name:      name,
		Type:      ctype,
		Color:     color,
		Icon:      icon,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.put(c)
	return c
}

// GetCategory looks up a category by id.
func (m *CategoryManager) GetCategory(id string) (Category, bool) {
	c, ok := m.categories[id]
	return c, ok
}

// GetCategoryByName finds an active category by exact name, case-insensitive.
func (m *CategoryManager) GetCategoryByName(name string) (Category, bool) {
	for _, c := range m.ActiveCategories() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// AllCategories returns every category in insertion order. The returned slice
// is a fresh snapshot.
func (m *CategoryManager) AllCategories() []Category {
	out := make([]Category, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.categories[id])
	}
	return out
}

// ActiveCategories returns the categories not soft-deactivated.
func (m *CategoryManager) ActiveCategories() []Category {
	return m.filter(func(c Category) bool { return c.IsActive })
}

// CategoriesByType returns active categories matching the given type.
// Categories typed "both" match income and expense alike.
func (m *CategoryManager) CategoriesByType(t CategoryType) []Category {
	return m.filter(func(c Category) bool {
		return c.IsActive && (c.Type == t || c.Type == CategoryTypeBoth)
	})
}

// IncomeCategories returns the active income-side categories.
func (m *CategoryManager) IncomeCategories() []Category {
	return m.CategoriesByType(CategoryTypeIncome)
}

// ExpenseCategories returns the active expense-side categories.
func (m *CategoryManager) ExpenseCategories() []Category {
	return m.CategoriesByType(CategoryTypeExpense)
}

// DefaultCategories returns the built-in categories.
func (m *CategoryManager) DefaultCategories() []Category {
	return m.filter(func(c Category) bool { return c.IsDefault })
}

// CustomCategories returns the user-created categories.
func (m *CategoryManager) CustomCategories() []Category {
	return m.filter(func(c Category) bool { return !c.IsDefault })
}

func (m *CategoryManager) filter(keep func(Category) bool) []Category {
	out := make([]Category, 0, len(m.order))
	for _, id := range m.order {
		if c := m.categories[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// UpdateCategory applies a partial update and stamps updatedAt. For default
// categories, attempts to change id, isDefault, or createdAt are dropped
// without error. Returns false when the id is unknown.
func (m *CategoryManager) UpdateCategory(id string, updates CategoryUpdate) bool {
	c, ok := m.categories[id]
	if !ok {
		return false
	}

	if c.IsDefault {
		updates.ID = nil
		updates.IsDefault = nil
		updates.CreatedAt = nil
	}

	if updates.ID != nil {
		c.ID = *updates.ID
	}
	if updates.Name != nil {
		c.Name = *updates.Name
	}
	if updates.Type != nil {
		c.Type = *updates.Type
	}
	if updates.Color != nil {
		c.Color = *updates.Color
	}
	if updates.Icon != nil {
		c.Icon = *updates.Icon
	}
	if updates.IsDefault != nil {
		c.IsDefault = *updates.IsDefault
	}
	if updates.IsActive != nil {
		c.IsActive = *updates.IsActive
	}
	if updates.CreatedAt != nil {
		c.CreatedAt = *updates.CreatedAt
	}
	c.UpdatedAt = time.Now()

	m.categories[id] = c
	return true
}

// DeleteCategory removes a custom category. Default categories are never
// deletable; attempting it returns false.
func (m *CategoryManager) DeleteCategory(id string) bool {
	c, ok := m.categories[id]
	if !ok || c.IsDefault {
		return false
	}

	delete(m.categories, id)
	for i, oid := range m.order {
		if oid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return true
}

// DeactivateCategory soft-hides a category from the active views.
func (m *CategoryManager) DeactivateCategory(id string) bool {
	return m.setActive(id, false)
}

// ActivateCategory restores a deactivated category.
func (m *CategoryManager) ActivateCategory(id string) bool {
	return m.setActive(id, true)
}

func (m *CategoryManager) setActive(id string, active bool) bool {
	c, ok := m.categories[id]
	if !ok {
		return false
	}
	c.IsActive = active
	c.UpdatedAt = time.Now()
	m.categories[id] = c
	return true
}

// SearchCategories matches active categories by case-insensitive substring.
func (m *CategoryManager) SearchCategories(query string) []Category {
	q := strings.ToLower(query)
	return m.filter(func(c Category) bool {
		return c.IsActive && strings.Contains(strings.ToLower(c.Name), q)
	})
}

// IsCategoryNameTaken reports whether an active category already uses the
// name (case-insensitive exact match), excluding excludeID for rename checks.
func (m *CategoryManager) IsCategoryNameTaken(name string, excludeID string) bool {
	for _, c := range m.ActiveCategories() {
		if strings.EqualFold(c.Name, name) && c.ID != excludeID {
			return true
		}
	}
	return false
}

// ExportCategories serializes every category plus the custom-id counter.
func (m *CategoryManager) ExportCategories() CategoryDocument {
	return CategoryDocument{
		Categories:   m.AllCategories(),
		NextCustomID: m.nextCustomID,
	}
}

// ImportCategories replaces the manager's contents with the document's. The
// built-in defaults are restored unconditionally, ignoring any defaults in
// the document; custom categories are carried verbatim with their original
// ids. Returns false, leaving state unchanged, when the categories field is
// missing.
func (m *CategoryManager) ImportCategories(doc CategoryDocument) bool {
	if doc.Categories == nil {
		log.Warn().Msg("category import rejected: missing categories field")
		return false
	}

	defaults := m.DefaultCategories()
	m.categories = make(map[string]Category)
	m.order = nil
	for _, c := range defaults {
		m.put(c)
	}

	for _, c := range doc.Categories {
		if c.IsDefault {
			continue
		}
		m.put(c)
	}

	if doc.NextCustomID > 0 {
		m.nextCustomID = doc.NextCustomID
	}

	log.Debug().
		Int("custom", len(m.CustomCategories())).
		Int("next_custom_id", m.nextCustomID).
		Msg("Categories imported")
	return true
}
