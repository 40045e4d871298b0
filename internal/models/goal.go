package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus is derived from the goal amounts and never set by callers.
type GoalStatus string

const (
	GoalInProgress GoalStatus = "InProgress"
	GoalAchieved   GoalStatus = "Achieved"
)

// Goal represents a monetary target to be reached by a deadline.
type Goal struct {
	ID string `json:"id"`

	// Owner is the user ID (or free-form owner name) the goal belongs to.
	Owner string `json:"owner"`

	// TargetAmount is strictly positive.
	TargetAmount decimal.Decimal `json:"targetAmount"`

	// CurrentAmount starts at zero and moves with contributions.
	CurrentAmount decimal.Decimal `json:"currentAmount"`

	// Deadline is a calendar date (midnight UTC).
	Deadline time.Time `json:"deadline"`

	// Status is Achieved iff CurrentAmount >= TargetAmount.
	Status GoalStatus `json:"status"`

	Description string `json:"description,omitempty"`
	CreatedAt   int64  `json:"createdAt"`
}
