package testutil

import (
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/service"
	"github.com/centavo-app/centavo-backend/internal/validation"
)

// NewEcho returns an Echo instance wired with the request validator,
// matching what main sets up in production.
func NewEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.NewValidator()
	return e
}

// NewBudgetService returns a service with no event publisher attached
func NewBudgetService() *service.BudgetService {
	return service.NewBudgetService(nil, decimal.Decimal{})
}

// SeedBudget creates a budget with a handful of representative transactions
func SeedBudget(t *testing.T, svc *service.BudgetService) service.BudgetInfo {
	t.Helper()

	budget, err := svc.CreateBudget(service.CreateBudgetInput{Name: "Household"})
	if err != nil {
		t.Fatalf("Failed to create budget: %v", err)
	}

	seed := []service.TransactionInput{
		{
			Name:       "Salary",
			Amount:     decimal.NewFromInt(3000),
			Date:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			CategoryID: domain.CategorySalary,
			Type:       domain.TransactionTypeIncome,
		},
		{
			Name:       "Rent",
			Amount:     decimal.NewFromInt(1200),
			Date:       time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			CategoryID: domain.CategoryHousing,
			Type:       domain.TransactionTypeExpense,
		},
		{
			Name:       "Dining out",
			Amount:     decimal.NewFromInt(80),
			Date:       time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			CategoryID: domain.CategoryFood,
			Type:       domain.TransactionTypeExpense,
		},
	}
	for _, input := range seed {
		if _, err := svc.AddTransaction(budget.ID, input); err != nil {
			t.Fatalf("Failed to seed transaction %q: %v", input.Name, err)
		}
	}

	budget, err = svc.GetBudget(budget.ID)
	if err != nil {
		t.Fatalf("Failed to reload seeded budget: %v", err)
	}
	return budget
}
