package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/fintrack/internal/models"
)

// CanonicalDateLayout is the layout NormalizeDates rewrites dates into.
const CanonicalDateLayout = "2006-01-02"

// dateLayouts are tried in order. Layouts carrying an offset keep the calendar
// date as written in that offset.
var dateLayouts = []string{
	CanonicalDateLayout,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"01/02/2006",
	"Jan 2, 2006",
	"Mon Jan 02 2006",
}

// ParseCalendarDate parses s and returns its calendar date as midnight UTC.
// Time-of-day and offset are discarded after the date is read.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return CalendarDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// CalendarDate truncates t to midnight UTC of the date t shows in its own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeDates rewrites every parsable transaction date into
// CanonicalDateLayout. Unparsable dates are left untouched.
func NormalizeDates(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, tx := range txs {
		if d, err := ParseCalendarDate(tx.Date); err == nil {
			tx.Date = d.Format(CanonicalDateLayout)
		}
		out[i] = tx
	}
	return out
}
