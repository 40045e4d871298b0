// Package api defines the request and response messages of the fintrack.v1
// Connect services. Messages are plain structs encoded as JSON.
package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/trend"
)

// AddTransactionRequest records a new ledger entry.
type AddTransactionRequest struct {
	Date        string                 `json:"date"`
	Amount      decimal.Decimal        `json:"amount"`
	Category    string                 `json:"category"`
	Description string                 `json:"description,omitempty"`
	Payer       string                 `json:"payer,omitempty"`
	Type        models.TransactionType `json:"type"`
}

type AddTransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
	// Balance is the ledger balance after the insert.
	Balance decimal.Decimal `json:"balance"`
}

// ListTransactionsRequest filters and orders the ledger. Empty fields do not filter.
type ListTransactionsRequest struct {
	// Date matches any transaction on the same calendar day.
	Date string `json:"date,omitempty"`
	// Category matches case-insensitively.
	Category  string                 `json:"category,omitempty"`
	MinAmount *decimal.Decimal       `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal       `json:"maxAmount,omitempty"`
	Type      models.TransactionType `json:"type,omitempty"`
	// Sort is "added" (default) or "date".
	Sort string `json:"sort,omitempty"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

// UpdateTransactionRequest fully replaces the transaction with the same ID.
type UpdateTransactionRequest struct {
	Transaction models.Transaction `json:"transaction"`
}

type UpdateTransactionResponse struct {
	Transaction models.Transaction `json:"transaction"`
}

type DeleteTransactionRequest struct {
	ID string `json:"id"`
}

type DeleteTransactionResponse struct{}

// GetSummaryRequest selects the transactions to summarize.
type GetSummaryRequest struct {
	Type         models.TransactionType `json:"type,omitempty"`
	CalendarDate string                 `json:"calendarDate,omitempty"`
	// UnifiedDates groups daily totals by calendar date instead of the
	// literal stored date string.
	UnifiedDates bool `json:"unifiedDates,omitempty"`
}

type GetSummaryResponse struct {
	TotalIncome    decimal.Decimal            `json:"totalIncome"`
	TotalExpense   decimal.Decimal            `json:"totalExpense"`
	Balance        decimal.Decimal            `json:"balance"`
	Count          int                        `json:"count"`
	CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
	DailyTotals    map[string]decimal.Decimal `json:"dailyTotals"`
	Series         []trend.Point              `json:"series"`
}
