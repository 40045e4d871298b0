// Package events publishes domain events (recorded transactions, group
// expenses, achieved goals) to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Type names an event.
type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionDeleted Type = "transaction.deleted"
	GroupExpenseAdded  Type = "group.expense_added"
	GoalAchieved       Type = "goal.achieved"
)

// Event is the message envelope. Payload holds the affected entity.
type Event struct {
	Type      Type            `json:"type"`
	EntityID  string          `json:"entityId"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// New builds an event for entity. A payload that cannot be encoded is dropped.
func New(t Type, entityID string, payload any) Event {
	e := Event{Type: t, EntityID: entityID, Timestamp: time.Now().UTC()}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			e.Payload = raw
		}
	}
	return e
}

// ToJSON converts the event to JSON bytes.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// FromJSON parses an event.
func FromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Emitter publishes on a best-effort basis: failures are logged, never returned.
type Emitter struct {
	pub Publisher
}

// NewEmitter wraps pub. A nil pub disables publishing.
func NewEmitter(pub Publisher) *Emitter {
	return &Emitter{pub: pub}
}

// Emit publishes e.
func (em *Emitter) Emit(ctx context.Context, e Event) {
	if em == nil || em.pub == nil {
		slog.Debug("Event publishing disabled, skipping", "type", e.Type, "entity_id", e.EntityID)
		return
	}
	if err := em.pub.Publish(ctx, e); err != nil {
		slog.Warn("Failed to publish event", "type", e.Type, "entity_id", e.EntityID, "error", err)
	}
}

// Recorder is an in-memory Publisher.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish implements Publisher.
func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of everything published so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// OfType returns the recorded events of type t.
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
