package domain

import "errors"

// Domain errors
var (
	ErrBudgetNotFound         = errors.New("budget not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrTransactionNotFound    = errors.New("transaction not found")
	ErrInvalidLimit           = errors.New("budget limit must be greater than zero")
	ErrInvalidAmount          = errors.New("amount must be greater than zero")
	ErrNameRequired           = errors.New("name is required")
	ErrNameTooLong            = errors.New("name exceeds maximum length")
	ErrNameTaken              = errors.New("category name already in use")
	ErrDefaultCategory        = errors.New("default categories cannot be deleted")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCategoryType    = errors.New("invalid category type")
	ErrInvalidDocument        = errors.New("malformed budget document")
)

// Validation constants
const (
	MaxNameLength = 100
)
