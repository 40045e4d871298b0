package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

type CreateGoalRequest struct {
	// Owner defaults to the authenticated user.
	Owner        string          `json:"owner,omitempty"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	// Deadline is a calendar date, e.g. "2025-12-31".
	Deadline    string `json:"deadline"`
	Description string `json:"description,omitempty"`
}

type ListGoalsRequest struct {
	// Owner defaults to the authenticated user; empty lists every goal.
	Owner string `json:"owner,omitempty"`
}

type ContributeRequest struct {
	GoalID string          `json:"goalId"`
	Amount decimal.Decimal `json:"amount"`
}

type GetProgressRequest struct {
	GoalID string `json:"goalId"`
}

type DeleteGoalRequest struct {
	GoalID string `json:"goalId"`
}

type DeleteGoalResponse struct{}

// GoalView is a goal with its derived progress figures.
type GoalView struct {
	Goal          models.Goal     `json:"goal"`
	Progress      decimal.Decimal `json:"progress"`
	DaysRemaining int             `json:"daysRemaining"`
	// AveragePerDay is what must be saved daily from the current ledger
	// balance. Absent once the deadline has passed.
	AveragePerDay  *decimal.Decimal `json:"averagePerDay,omitempty"`
	DeadlinePassed bool             `json:"deadlinePassed"`
}

type GoalResponse struct {
	Goal GoalView `json:"goal"`
}

type ListGoalsResponse struct {
	Goals []GoalView `json:"goals"`
}
