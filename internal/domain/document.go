package domain

import "time"

// CategoryDocument is the serialized form of a CategoryManager.
type CategoryDocument struct {
	Categories   []Category `json:"categories"`
	NextCustomID int        `json:"nextCustomId"`
}

// TransactionDocument is the reduced wire form of a single transaction. The
// date serializes as an ISO-8601 string and the amount as a plain JSON
// number.
type TransactionDocument struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Date        time.Time       `json:"date"`
	CategoryID  string          `json:"categoryId"`
	Type        TransactionType `json:"type"`
}

// BudgetDocument is the persisted form of a whole budget aggregate, the
// contract between the core and the external store.
type BudgetDocument struct {
	ID           string                `json:"id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Limit        float64               `json:"limit"`
	Categories   *CategoryDocument     `json:"categories,omitempty"`
	Transactions []TransactionDocument `json:"transactions"`
}
