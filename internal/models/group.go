package models

import "github.com/shopspring/decimal"

// Member is a participant of a group. Members are unique by ID within a group.
type Member struct {
	ID string `json:"id"`
}

// Group represents a set of members sharing expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format unless a caller
	// supplies its own generator).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Roommates", "Work Lunch").
	Name string `json:"name"`

	// Members is the current member list in insertion order.
	Members []Member `json:"members"`

	// Expenses is the ordered expense history. Expenses reference the payer by
	// name only, so removing a member never rewrites history.
	Expenses []GroupExpense `json:"expenses"`

	// CreatedAt is the Unix millisecond timestamp when the group was created.
	CreatedAt int64 `json:"createdAt"`
}

// MemberIDs returns the member identifiers in order.
func (g Group) MemberIDs() []string {
	ids := make([]string, len(g.Members))
	for i, m := range g.Members {
		ids[i] = m.ID
	}
	return ids
}

// GroupExpense is an expense scoped to a group. It has the same shape as a
// Transaction but is never reconciled with the personal ledger.
type GroupExpense struct {
	ID          string          `json:"id,omitempty"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Payer       string          `json:"payer"`
	CreatedAt   int64           `json:"createdAt"`
}
