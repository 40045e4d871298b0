// Package notifier turns domain events into log lines for operators.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/goal"
	"github.com/mmynk/fintrack/internal/models"
)

// Handler logs every event it receives. Goal achievements are reported at
// Info, everything else at Debug.
type Handler struct {
	logger *slog.Logger
}

// New creates a Handler. A nil logger uses slog.Default().
func New(logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger}
}

// Handle processes a single event. A payload that does not decode is an
// error, so the consumer requeues it.
func (h *Handler) Handle(ctx context.Context, e events.Event) error {
	switch e.Type {
	case events.GoalAchieved:
		var g models.Goal
		if err := json.Unmarshal(e.Payload, &g); err != nil {
			return fmt.Errorf("decode %s payload: %w", e.Type, err)
		}
		h.logger.InfoContext(ctx, "Goal achieved",
			"goal_id", e.EntityID,
			"owner", g.Owner,
			"target", g.TargetAmount,
			"saved", g.CurrentAmount,
			"progress", goal.Progress(g),
		)
	case events.TransactionCreated, events.TransactionDeleted:
		var tx models.Transaction
		if err := json.Unmarshal(e.Payload, &tx); err != nil {
			return fmt.Errorf("decode %s payload: %w", e.Type, err)
		}
		h.logger.DebugContext(ctx, "Ledger changed",
			"event", e.Type,
			"transaction_id", e.EntityID,
			"type", tx.Type,
			"amount", tx.Amount,
			"category", tx.Category,
		)
	default:
		h.logger.DebugContext(ctx, "Event received", "event", e.Type, "entity_id", e.EntityID)
	}
	return nil
}
