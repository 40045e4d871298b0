// Package group manages shared-expense groups. Every operation returns a new
// Group value; the argument is never modified.
package group

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/models"
)

// ErrDuplicateMember is returned when a member id is already part of the group.
var ErrDuplicateMember = errors.New("duplicate member")

// Allocator creates and mutates groups.
type Allocator struct {
	ids   ids.Generator
	clock ids.Clock
}

// NewAllocator returns an Allocator using gen for group and expense ids and
// clock for creation timestamps.
func NewAllocator(gen ids.Generator, clock ids.Clock) *Allocator {
	if gen == nil {
		gen = ids.UUID{}
	}
	if clock == nil {
		clock = ids.SystemClock
	}
	return &Allocator{ids: gen, clock: clock}
}

// Create returns a new group with a fresh id, the given members and no expenses.
func (a *Allocator) Create(name string, members []string) (models.Group, error) {
	g := models.Group{
		ID:        a.ids.NewID(),
		Name:      name,
		Members:   []models.Member{},
		Expenses:  []models.GroupExpense{},
		CreatedAt: a.clock().UnixMilli(),
	}
	for _, m := range members {
		var err error
		if g, err = a.AddMember(g, m); err != nil {
			return models.Group{}, err
		}
	}
	return g, nil
}

// AddMember appends a member. A member id already in the group is rejected.
func (a *Allocator) AddMember(g models.Group, memberID string) (models.Group, error) {
	for _, m := range g.Members {
		if m.ID == memberID {
			return models.Group{}, fmt.Errorf("%w: %q", ErrDuplicateMember, memberID)
		}
	}
	out := clone(g)
	out.Members = append(out.Members, models.Member{ID: memberID})
	return out, nil
}

// RemoveMember drops the member with the given id. Expenses paid by that
// member are kept. Removing an absent id is a no-op.
func (a *Allocator) RemoveMember(g models.Group, memberID string) models.Group {
	out := clone(g)
	out.Members = out.Members[:0]
	for _, m := range g.Members {
		if m.ID != memberID {
			out.Members = append(out.Members, m)
		}
	}
	return out
}

// AddExpense appends an expense. The payer is not checked against the member
// list. Missing ids and timestamps are filled in.
func (a *Allocator) AddExpense(g models.Group, e models.GroupExpense) models.Group {
	if e.ID == "" {
		e.ID = a.ids.NewID()
	}
	if e.CreatedAt == 0 {
		e.CreatedAt = a.clock().UnixMilli()
	}
	out := clone(g)
	out.Expenses = append(out.Expenses, e)
	return out
}

// RemoveExpense drops the expense at index. An out-of-range index is a no-op.
func (a *Allocator) RemoveExpense(g models.Group, index int) models.Group {
	out := clone(g)
	if index < 0 || index >= len(g.Expenses) {
		return out
	}
	out.Expenses = append(out.Expenses[:index], out.Expenses[index+1:]...)
	return out
}

// Rename returns the group with a new display name.
func (a *Allocator) Rename(g models.Group, name string) models.Group {
	out := clone(g)
	out.Name = name
	return out
}

// Split allocates a single expense across members.
func Split(e models.GroupExpense, members []string, method calculator.Method, percentages []decimal.Decimal, opts calculator.SplitOptions) (calculator.SplitResult, error) {
	return calculator.SplitExpense(e.Amount, members, method, percentages, opts)
}

// Total is the sum of every expense amount in the group.
func Total(g models.Group) decimal.Decimal {
	total := decimal.Zero
	for _, e := range g.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SplitTotal splits the group total equally across the current members.
func SplitTotal(g models.Group) (calculator.SplitResult, error) {
	return calculator.SplitExpense(Total(g), g.MemberIDs(), calculator.MethodEqual, nil, calculator.SplitOptions{})
}

// Balances computes per-member balances and simplified debts for the group.
func Balances(g models.Group) ([]calculator.MemberBalance, []calculator.DebtEdge, error) {
	expenses := make([]calculator.ExpenseForBalance, len(g.Expenses))
	for i, e := range g.Expenses {
		expenses[i] = calculator.ExpenseForBalance{Amount: e.Amount, Payer: e.Payer}
	}
	return calculator.GroupBalances(expenses, g.MemberIDs())
}

func clone(g models.Group) models.Group {
	out := g
	out.Members = make([]models.Member, len(g.Members), len(g.Members)+1)
	copy(out.Members, g.Members)
	out.Expenses = make([]models.GroupExpense, len(g.Expenses), len(g.Expenses)+1)
	copy(out.Expenses, g.Expenses)
	return out
}
