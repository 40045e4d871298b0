package models

import "github.com/shopspring/decimal"

// TransactionType says whether a transaction adds to or subtracts from the balance.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction represents a single personal ledger entry.
type Transaction struct {
	// ID is assigned by the persistence layer on creation.
	ID string `json:"id"`

	// Date is the user-supplied date, kept exactly as entered (e.g. "2025-03-14").
	// It is not trusted for ordering; use CreatedAt for insertion order.
	Date string `json:"date"`

	// Amount is always non-negative.
	Amount decimal.Decimal `json:"amount"`

	// Category is matched case-sensitively when aggregating.
	Category string `json:"category"`

	// Description is optional free text.
	Description string `json:"description,omitempty"`

	// Payer is the person who paid or received the money.
	Payer string `json:"payer,omitempty"`

	// Type is income or expense.
	Type TransactionType `json:"type"`

	// CreatedAt is the Unix millisecond timestamp of insertion.
	CreatedAt int64 `json:"createdAt"`
}
