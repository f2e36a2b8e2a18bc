package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New()

	_ = v.RegisterValidation("money_amount", validateMoneyAmount)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("category_type", validateCategoryType)
	_ = v.RegisterValidation("hex_color", validateHexColor)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

// Validate implements the echo.Validator interface
func (v *Validator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// Custom validation functions

// validateMoneyAmount validates that an amount string parses as a positive
// decimal with at most 2 fractional digits
func validateMoneyAmount(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return false
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return false
	}
	if !amount.IsPositive() {
		return false
	}
	return amount.Exponent() >= -2
}

// validateTransactionType validates that transaction type is one of the allowed types
func validateTransactionType(fl validator.FieldLevel) bool {
	txType := strings.ToLower(fl.Field().String())
	validTypes := map[string]bool{
		"income":  true,
		"expense": true,
	}
	return validTypes[txType]
}

// validateCategoryType validates that category type is one of the allowed types
func validateCategoryType(fl validator.FieldLevel) bool {
	catType := strings.ToLower(fl.Field().String())
	validTypes := map[string]bool{
		"income":  true,
		"expense": true,
		"both":    true,
	}
	return validTypes[catType]
}

// validateHexColor validates a #RRGGBB color value
func validateHexColor(fl validator.FieldLevel) bool {
	color := fl.Field().String()
	if color == "" {
		return false
	}

	matched, _ := regexp.MatchString(`^#[0-9a-fA-F]{6}$`, color)
	return matched
}
