// Package goal tracks progress of monetary goals against a deadline.
package goal

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
)

// ErrInvalidTarget is returned when a goal target is zero or negative.
var ErrInvalidTarget = errors.New("goal target must be positive")

var (
	hundred = decimal.NewFromInt(100)
	// the largest percentage below 100 at the library's division precision
	almostHundred = hundred.Sub(decimal.New(1, -int32(decimal.DivisionPrecision)))
)

// Tracker creates goals and applies contributions to them.
type Tracker struct {
	ids   ids.Generator
	clock ids.Clock
}

// NewTracker returns a Tracker. Nil arguments fall back to UUIDs and the
// system clock.
func NewTracker(gen ids.Generator, clock ids.Clock) *Tracker {
	if gen == nil {
		gen = ids.UUID{}
	}
	if clock == nil {
		clock = ids.SystemClock
	}
	return &Tracker{ids: gen, clock: clock}
}

// Create returns an in-progress goal with nothing saved yet. The deadline is
// truncated to its calendar date.
func (t *Tracker) Create(owner string, target decimal.Decimal, deadline time.Time) (models.Goal, error) {
	if !target.IsPositive() {
		return models.Goal{}, fmt.Errorf("%w: got %s", ErrInvalidTarget, target)
	}
	return models.Goal{
		ID:            t.ids.NewID(),
		Owner:         owner,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		Deadline:      ledger.CalendarDate(deadline),
		Status:        models.GoalInProgress,
		CreatedAt:     t.clock().UnixMilli(),
	}, nil
}

// ApplyContribution is the package-level ApplyContribution.
func (t *Tracker) ApplyContribution(g models.Goal, amount decimal.Decimal) models.Goal {
	return ApplyContribution(g, amount)
}

// ApplyContribution adds amount to the saved total and recomputes the status.
// A negative amount models a reversed contribution and can move an achieved
// goal back to in progress.
func ApplyContribution(g models.Goal, amount decimal.Decimal) models.Goal {
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.Status = Status(g)
	return g
}

// Status derives the goal status from its amounts.
func Status(g models.Goal) models.GoalStatus {
	if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
		return models.GoalAchieved
	}
	return models.GoalInProgress
}

// Progress is the completion percentage, clamped to [0, 100]. It reaches 100
// exactly when the goal is achieved.
func Progress(g models.Goal) decimal.Decimal {
	if Status(g) == models.GoalAchieved {
		return hundred
	}
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Mul(hundred).Div(g.TargetAmount)
	switch {
	case pct.GreaterThanOrEqual(hundred):
		// division rounded a shortfall beyond the last digit up to 100
		return almostHundred
	case pct.IsNegative():
		return decimal.Zero
	}
	return pct
}

// DaysRemaining is the number of days from the calendar date of today until
// the deadline, rounded up. It is zero or negative once the deadline has
// passed.
func DaysRemaining(g models.Goal, today time.Time) int {
	return int(math.Ceil(g.Deadline.Sub(ledger.CalendarDate(today)).Hours() / 24))
}

// AveragePerDay is how much has to be saved per remaining day for balance to
// reach the target, rounded to cents. ok is false when no days remain.
func AveragePerDay(g models.Goal, balance decimal.Decimal, today time.Time) (avg decimal.Decimal, ok bool) {
	days := DaysRemaining(g, today)
	if days <= 0 {
		return decimal.Zero, false
	}
	remaining := g.TargetAmount.Sub(balance)
	return remaining.Div(decimal.NewFromInt(int64(days))).Round(2), true
}
