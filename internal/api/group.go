package api

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
)

type CreateGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

type GetGroupRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []models.Group `json:"groups"`
}

type RenameGroupRequest struct {
	GroupID string `json:"groupId"`
	Name    string `json:"name"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"groupId"`
}

type DeleteGroupResponse struct{}

type AddMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

type RemoveMemberRequest struct {
	GroupID  string `json:"groupId"`
	MemberID string `json:"memberId"`
}

type AddExpenseRequest struct {
	GroupID     string          `json:"groupId"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Payer       string          `json:"payer"`
}

type RemoveExpenseRequest struct {
	GroupID string `json:"groupId"`
	Index   int    `json:"index"`
}

// GroupResponse is returned by every call that yields a single group.
type GroupResponse struct {
	Group models.Group    `json:"group"`
	Total decimal.Decimal `json:"total"`
}

// SplitExpenseRequest splits either an explicit amount or the group expense
// at ExpenseIndex. Members default to the group's current members.
type SplitExpenseRequest struct {
	GroupID      string            `json:"groupId,omitempty"`
	ExpenseIndex *int              `json:"expenseIndex,omitempty"`
	Amount       *decimal.Decimal  `json:"amount,omitempty"`
	Members      []string          `json:"members,omitempty"`
	Method       string            `json:"method"`
	Percentages  []decimal.Decimal `json:"percentages,omitempty"`
}

type SplitExpenseResponse struct {
	Method string                     `json:"method"`
	Shares map[string]decimal.Decimal `json:"shares"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"groupId"`
}

type MemberBalance struct {
	Member     string          `json:"member"`
	NetBalance decimal.Decimal `json:"netBalance"`
	TotalPaid  decimal.Decimal `json:"totalPaid"`
	TotalOwed  decimal.Decimal `json:"totalOwed"`
}

type Debt struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type GetGroupBalancesResponse struct {
	Total decimal.Decimal `json:"total"`
	// EqualShares is the group total split equally across current members.
	EqualShares map[string]decimal.Decimal `json:"equalShares"`
	Balances    []MemberBalance            `json:"balances"`
	Debts       []Debt                     `json:"debts"`
}
