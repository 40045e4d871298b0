package calculator

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ExpenseForBalance is the minimal expense information needed for balances.
type ExpenseForBalance struct {
	Amount decimal.Decimal
	Payer  string
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	MemberName string
	NetBalance decimal.Decimal // Positive = owed money, Negative = owes money
	TotalPaid  decimal.Decimal
	TotalOwed  decimal.Decimal
}

// DebtEdge represents a debt from one person to another.
type DebtEdge struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

// settleThreshold hides rounding noise from equal splits.
var settleThreshold = decimal.New(1, -2)

// GroupBalances computes who paid what and who owes what across a group's
// expenses, splitting every expense equally among the current members.
//
// Algorithm:
// - For each expense: payer contributed +amount, each member owes their equal share
// - Aggregate: net_balance = total_paid - total_owed
// - Debts: greedy matching of the largest debtor with the largest creditor
//
// Payers who are no longer members are still credited for what they paid.
// With no members nobody owes a share and no debts are produced. Balances are
// sorted by member name.
func GroupBalances(expenses []ExpenseForBalance, members []string) ([]MemberBalance, []DebtEdge, error) {
	balances := make(map[string]*MemberBalance)
	get := func(name string) *MemberBalance {
		if b, ok := balances[name]; ok {
			return b
		}
		b := &MemberBalance{MemberName: name, TotalPaid: decimal.Zero, TotalOwed: decimal.Zero}
		balances[name] = b
		return b
	}

	for _, m := range members {
		get(m)
	}

	for _, e := range expenses {
		if e.Payer == "" {
			continue
		}
		payer := get(e.Payer)
		payer.TotalPaid = payer.TotalPaid.Add(e.Amount)
		if len(members) == 0 {
			continue
		}

		shares, err := SplitExpense(e.Amount, members, MethodEqual, nil, SplitOptions{})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to split expense: %w", err)
		}

		for member, share := range shares {
			b := get(member)
			b.TotalOwed = b.TotalOwed.Add(share)
		}
	}

	memberBalances := make([]MemberBalance, 0, len(balances))
	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalOwed)
		memberBalances = append(memberBalances, *b)
	}
	sort.Slice(memberBalances, func(i, j int) bool {
		return memberBalances[i].MemberName < memberBalances[j].MemberName
	})

	return memberBalances, simplifyDebts(memberBalances), nil
}

// simplifyDebts matches debtors with creditors to minimize the number of payments.
func simplifyDebts(balances []MemberBalance) []DebtEdge {
	type party struct {
		name   string
		amount decimal.Decimal
	}
	var creditors, debtors []party
	for _, b := range balances {
		switch {
		case b.NetBalance.GreaterThan(settleThreshold):
			creditors = append(creditors, party{b.MemberName, b.NetBalance})
		case b.NetBalance.LessThan(settleThreshold.Neg()):
			debtors = append(debtors, party{b.MemberName, b.NetBalance.Neg()})
		}
	}
	byAmount := func(ps []party) func(i, j int) bool {
		return func(i, j int) bool {
			if !ps[i].amount.Equal(ps[j].amount) {
				return ps[i].amount.GreaterThan(ps[j].amount)
			}
			return ps[i].name < ps[j].name
		}
	}
	sort.Slice(creditors, byAmount(creditors))
	sort.Slice(debtors, byAmount(debtors))

	var edges []DebtEdge
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		amount := decimal.Min(debtors[i].amount, creditors[j].amount)
		if amount.GreaterThan(settleThreshold) {
			edges = append(edges, DebtEdge{From: debtors[i].name, To: creditors[j].name, Amount: amount})
		}

		debtors[i].amount = debtors[i].amount.Sub(amount)
		creditors[j].amount = creditors[j].amount.Sub(amount)

		if debtors[i].amount.LessThan(settleThreshold) {
			i++
		}
		if creditors[j].amount.LessThan(settleThreshold) {
			j++
		}
	}
	return edges
}
