package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/centavo-app/centavo-backend/internal/service"
)

// CategoryHandler handles category-related HTTP requests
type CategoryHandler struct {
	budgetService *service.BudgetService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(budgetService *service.BudgetService) *CategoryHandler {
	return &CategoryHandler{budgetService: budgetService}
}

// CreateCategoryRequest represents the create category request body
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Type  string `json:"type" validate:"required,category_type"`
	Color string `json:"color" validate:"omitempty,hex_color"`
	Icon  string `json:"icon" validate:"omitempty,max=50"`
}

// UpdateCategoryRequest represents the update category request body.
// Absent fields are left untouched.
type UpdateCategoryRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,max=100"`
	Type  *string `json:"type,omitempty" validate:"omitempty,category_type"`
	Color *string `json:"color,omitempty" validate:"omitempty,hex_color"`
	Icon  *string `json:"icon,omitempty" validate:"omitempty,max=50"`
}

// CreateCategory handles POST /budgets/:id/categories
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	category, err := h.budgetService.CreateCategory(c.Param("id"), service.CategoryInput{
		Name:  req.Name,
		Type:  domain.CategoryType(req.Type),
		Color: req.Color,
		Icon:  req.Icon,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, category)
}

// GetCategories handles GET /budgets/:id/categories
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	filter := service.CategoryFilter{
		Search:     c.QueryParam("search"),
		ActiveOnly: c.QueryParam("active") == "true",
	}
	if typeStr := c.QueryParam("type"); typeStr != "" {
		catType := domain.CategoryType(typeStr)
		if !domain.ValidCategoryType(catType) {
			return NewValidationError(c, "Invalid type", []ValidationError{
				{Field: "type", Message: "Type must be one of: income, expense, both"},
			})
		}
		filter.Type = &catType
	}

	categories, err := h.budgetService.Categories(c.Param("id"), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

// UpdateCategory handles PUT /budgets/:id/categories/:categoryId
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
	var req UpdateCategoryRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}
	if err := c.Validate(&req); err != nil {
		return NewValidationError(c, err.Error(), nil)
	}

	update := domain.CategoryUpdate{
		Name:  req.Name,
		Color: req.Color,
		Icon:  req.Icon,
	}
	if req.Type != nil {
		catType := domain.CategoryType(*req.Type)
		update.Type = &catType
	}

	category, err := h.budgetService.UpdateCategory(c.Param("id"), c.Param("categoryId"), update)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /budgets/:id/categories/:categoryId
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	if err := h.budgetService.DeleteCategory(c.Param("id"), c.Param("categoryId")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DeactivateCategory handles PATCH /budgets/:id/categories/:categoryId/deactivate
func (h *CategoryHandler) DeactivateCategory(c echo.Context) error {
	if err := h.budgetService.DeactivateCategory(c.Param("id"), c.Param("categoryId")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ActivateCategory handles PATCH /budgets/:id/categories/:categoryId/activate
func (h *CategoryHandler) ActivateCategory(c echo.Context) error {
	if err := h.budgetService.ActivateCategory(c.Param("id"), c.Param("categoryId")); err != nil {
		return respondServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
