package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type amountPayload struct {
	Amount string `json:"amount" validate:"required,money_amount"`
}

type typePayload struct {
	Type string `json:"type" validate:"required,transaction_type"`
}

type categoryPayload struct {
	Type  string `json:"type" validate:"required,category_type"`
	Color string `json:"color" validate:"omitempty,hex_color"`
}

func TestValidateMoneyAmount(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		amount  string
		wantErr bool
	}{
		{"whole number", "100", false},
		{"two decimals", "99.99", false},
		{"one decimal", "0.5", false},
		{"zero", "0", true},
		{"negative", "-10.00", true},
		{"three decimals", "1.005", true},
		{"not a number", "abc", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(amountPayload{Amount: tt.amount})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateTransactionType(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(typePayload{Type: "income"}))
	assert.NoError(t, v.Validate(typePayload{Type: "expense"}))
	assert.NoError(t, v.Validate(typePayload{Type: "EXPENSE"}))
	assert.Error(t, v.Validate(typePayload{Type: "transfer"}))
	assert.Error(t, v.Validate(typePayload{Type: ""}))
}

func TestValidateCategoryTypeAndColor(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(categoryPayload{Type: "both", Color: "#FF6B6B"}))
	assert.NoError(t, v.Validate(categoryPayload{Type: "income"}))
	assert.Error(t, v.Validate(categoryPayload{Type: "savings"}))
	assert.Error(t, v.Validate(categoryPayload{Type: "expense", Color: "FF6B6B"}))
	assert.Error(t, v.Validate(categoryPayload{Type: "expense", Color: "#FF6B"}))
}
