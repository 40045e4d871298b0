// Package ledger implements the personal transaction ledger: appending,
// date filtering, category aggregation and balance derivation.
//
// Every function is pure. Inputs are never modified and results are freshly
// allocated, so callers can share a slice between readers without copying.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// Append returns a new ledger with tx appended at the end.
// No validation and no duplicate-id detection is performed; ids come from the
// persistence layer.
func Append(txs []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs), len(txs)+1)
	copy(out, txs)
	return append(out, tx)
}

// FilterByCalendarDate returns the transactions whose calendar date equals the
// calendar date of date, ignoring time of day. Transactions with unparsable
// dates never match, and an unparsable target matches nothing.
func FilterByCalendarDate(txs []models.Transaction, date string) []models.Transaction {
	out := []models.Transaction{}
	target, err := ParseCalendarDate(date)
	if err != nil {
		return out
	}
	for _, tx := range txs {
		if sameDay(tx.Date, target) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByDate is FilterByCalendarDate.
func FilterByDate(txs []models.Transaction, date string) []models.Transaction {
	return FilterByCalendarDate(txs, date)
}

func sameDay(date string, target time.Time) bool {
	d, err := ParseCalendarDate(date)
	return err == nil && d.Equal(target)
}

// Categorize sums amounts per category. Category names are compared exactly
// (case-sensitive, untrimmed) and categories with no transactions are absent.
func Categorize(txs []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// Balance is the sum of incomes minus the sum of expenses.
func Balance(txs []models.Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, tx := range txs {
		balance = balance.Add(signed(tx))
	}
	return balance
}

// BalanceDelta is the change a single insert (or, with removed set, a removal)
// makes to a running balance.
func BalanceDelta(tx models.Transaction, removed bool) decimal.Decimal {
	if removed {
		return signed(tx).Neg()
	}
	return signed(tx)
}

func signed(tx models.Transaction) decimal.Decimal {
	switch tx.Type {
	case models.TransactionIncome:
		return tx.Amount
	case models.TransactionExpense:
		return tx.Amount.Neg()
	default:
		return decimal.Zero
	}
}

// Summary aggregates a ledger for display.
type Summary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	Balance      decimal.Decimal
	Count        int
}

// Summarize computes income, expense and balance totals in a single pass.
func Summarize(txs []models.Transaction) Summary {
	s := Summary{TotalIncome: decimal.Zero, TotalExpense: decimal.Zero, Count: len(txs)}
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionIncome:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
		case models.TransactionExpense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
		}
	}
	s.Balance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// ByType returns the transactions of the given type.
func ByType(txs []models.Transaction, t models.TransactionType) []models.Transaction {
	out := []models.Transaction{}
	for _, tx := range txs {
		if tx.Type == t {
			out = append(out, tx)
		}
	}
	return out
}

// Remove returns the ledger without the transaction with the given id.
// Removing an absent id is a no-op.
func Remove(txs []models.Transaction, id string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.ID != id {
			out = append(out, tx)
		}
	}
	return out
}

// Replace returns the ledger with the transaction sharing tx.ID fully replaced
// by tx. If no transaction has that id the ledger is returned unchanged.
func Replace(txs []models.Transaction, tx models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, existing := range txs {
		if existing.ID == tx.ID {
			out[i] = tx
			continue
		}
		out[i] = existing
	}
	return out
}
