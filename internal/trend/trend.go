// Package trend aggregates transactions into per-day totals for charts.
//
// Two keying rules exist on purpose. DailyTotals groups by the date string
// exactly as stored, so "2025-01-02" and "2025-01-02T10:00:00Z" are different
// days. DailyTotalsByCalendarDate groups by calendar date, matching the rule
// ledger.FilterByCalendarDate uses.
package trend

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
)

// DailyTotals sums amounts per literal date string.
func DailyTotals(txs []models.Transaction) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		totals[tx.Date] = totals[tx.Date].Add(tx.Amount)
	}
	return totals
}

// GroupByLiteralDateKey is DailyTotals.
func GroupByLiteralDateKey(txs []models.Transaction) map[string]decimal.Decimal {
	return DailyTotals(txs)
}

// DailyTotalsByCalendarDate sums amounts per calendar date, keyed in
// ledger.CanonicalDateLayout. Unparsable dates keep their literal key.
func DailyTotalsByCalendarDate(txs []models.Transaction) map[string]decimal.Decimal {
	return DailyTotals(ledger.NormalizeDates(txs))
}

// Point is one entry of a display series.
type Point struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// Series orders totals by key. Canonical dates sort chronologically under
// string ordering, so a normalized map yields a time series.
func Series(totals map[string]decimal.Decimal) []Point {
	points := make([]Point, 0, len(totals))
	for date, total := range totals {
		points = append(points, Point{Date: date, Total: total})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}
