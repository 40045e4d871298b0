package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

// Criteria narrows a transaction log. Zero-valued fields do not filter.
type Criteria struct {
	// Date matches on calendar date (see FilterByCalendarDate).
	Date string

	// Category matches case-insensitively.
	Category string

	// MinAmount and MaxAmount are inclusive bounds.
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal

	Type models.TransactionType
}

// Filter returns the transactions matching every set criterion, in input order.
func Filter(txs []models.Transaction, c Criteria) []models.Transaction {
	var target time.Time
	if c.Date != "" {
		d, err := ParseCalendarDate(c.Date)
		if err != nil {
			return []models.Transaction{}
		}
		target = d
	}

	out := []models.Transaction{}
	for _, tx := range txs {
		if c.Date != "" && !sameDay(tx.Date, target) {
			continue
		}
		if c.Category != "" && !strings.EqualFold(tx.Category, c.Category) {
			continue
		}
		if c.MinAmount != nil && tx.Amount.LessThan(*c.MinAmount) {
			continue
		}
		if c.MaxAmount != nil && tx.Amount.GreaterThan(*c.MaxAmount) {
			continue
		}
		if c.Type != "" && tx.Type != c.Type {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// SortOrder selects how a transaction log is ordered.
type SortOrder string

const (
	// SortByAdded orders by insertion (CreatedAt).
	SortByAdded SortOrder = "added"
	// SortByDate orders by calendar date; unparsable dates sort last.
	SortByDate SortOrder = "date"
)

// ParseSortOrder maps a user-supplied name onto a SortOrder. Empty means SortByAdded.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(s)) {
	case "", SortByAdded:
		return SortByAdded, nil
	case SortByDate:
		return SortByDate, nil
	default:
		return "", fmt.Errorf("unknown sort order %q", s)
	}
}

// Sort returns a sorted copy of txs. Ties keep their CreatedAt order, then
// their input order.
func Sort(txs []models.Transaction, order SortOrder) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	copy(out, txs)

	if order != SortByDate {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt < out[j].CreatedAt
		})
		return out
	}

	type key struct {
		date time.Time
		ok   bool
	}
	keys := make(map[int]key, len(out))
	idx := make([]int, len(out))
	for i, tx := range out {
		d, err := ParseCalendarDate(tx.Date)
		keys[i] = key{date: d, ok: err == nil}
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keys[idx[a]], keys[idx[b]]
		if ka.ok != kb.ok {
			return ka.ok
		}
		if ka.ok && !ka.date.Equal(kb.date) {
			return ka.date.Before(kb.date)
		}
		return out[idx[a]].CreatedAt < out[idx[b]].CreatedAt
	})

	sorted := make([]models.Transaction, len(out))
	for i, j := range idx {
		sorted[i] = out[j]
	}
	return sorted
}
