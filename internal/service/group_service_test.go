package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/api"
	"github.com/mmynk/fintrack/internal/events"
)

func createGroup(t *testing.T, s *testServer, name string, members ...string) string {
	t.Helper()
	resp, err := s.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	return resp.Msg.Group.ID
}

func addExpense(t *testing.T, s *testServer, groupID, amount, payer string) *api.GroupResponse {
	t.Helper()
	resp, err := s.groups.AddExpense(context.Background(), connect.NewRequest(&api.AddExpenseRequest{
		GroupID:  groupID,
		Date:     "2025-01-01",
		Amount:   decimal.RequireFromString(amount),
		Category: "Food",
		Payer:    payer,
	}))
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return resp.Msg
}

func TestCreateGroup(t *testing.T) {
	s := newTestServer(t, false)

	resp, err := s.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Roommates",
		Members: []string{"Alice", "Bob", "Charlie"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	g := resp.Msg.Group
	if g.ID == "" {
		t.Error("expected non-empty group ID")
	}
	if g.Name != "Roommates" {
		t.Errorf("name: expected 'Roommates', got '%s'", g.Name)
	}
	if len(g.Members) != 3 {
		t.Errorf("members: expected 3, got %d", len(g.Members))
	}
	if g.CreatedAt == 0 {
		t.Error("expected non-zero CreatedAt")
	}
	if !resp.Msg.Total.IsZero() {
		t.Errorf("total: expected 0, got %s", resp.Msg.Total)
	}
}

func TestCreateGroup_DuplicateMember(t *testing.T) {
	s := newTestServer(t, false)

	_, err := s.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Twins",
		Members: []string{"Alice", "Alice"},
	}))
	assertCode(t, err, connect.CodeAlreadyExists)
}

func TestGetGroup_NotFound(t *testing.T) {
	s := newTestServer(t, false)

	_, err := s.groups.GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{
		GroupID: "nonexistent-id",
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListGroups(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()

	empty, err := s.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(empty.Msg.Groups) != 0 {
		t.Errorf("expected 0 groups, got %d", len(empty.Msg.Groups))
	}

	createGroup(t, s, "Group A", "A1", "A2")
	createGroup(t, s, "Group B", "B1", "B2")

	resp, err := s.groups.ListGroups(ctx, connect.NewRequest(&api.ListGroupsRequest{}))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(resp.Msg.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(resp.Msg.Groups))
	}
	if resp.Msg.Groups[0].Name != "Group A" || resp.Msg.Groups[1].Name != "Group B" {
		t.Errorf("expected insertion order, got %s, %s", resp.Msg.Groups[0].Name, resp.Msg.Groups[1].Name)
	}
}

func TestGroupMembership(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	id := createGroup(t, s, "Trip", "Alice", "Bob")

	added, err := s.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: id, MemberID: "Charlie"}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if got := added.Msg.Group.MemberIDs(); len(got) != 3 || got[2] != "Charlie" {
		t.Errorf("unexpected members %v", got)
	}

	_, err = s.groups.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{GroupID: id, MemberID: "Bob"}))
	assertCode(t, err, connect.CodeAlreadyExists)

	removed, err := s.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: id, MemberID: "Alice"}))
	if err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	if got := removed.Msg.Group.MemberIDs(); len(got) != 2 || got[0] != "Bob" {
		t.Errorf("unexpected members %v", got)
	}

	renamed, err := s.groups.RenameGroup(ctx, connect.NewRequest(&api.RenameGroupRequest{GroupID: id, Name: "Road trip"}))
	if err != nil {
		t.Fatalf("RenameGroup failed: %v", err)
	}
	if renamed.Msg.Group.Name != "Road trip" {
		t.Errorf("name: expected 'Road trip', got '%s'", renamed.Msg.Group.Name)
	}

	fetched, err := s.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: id}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if fetched.Msg.Group.Name != "Road trip" || len(fetched.Msg.Group.Members) != 2 {
		t.Errorf("changes were not persisted: %+v", fetched.Msg.Group)
	}
}

func TestGroupExpenses(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	id := createGroup(t, s, "Flat", "Alice", "Bob")

	addExpense(t, s, id, "60", "Alice")
	resp := addExpense(t, s, id, "40", "Bob")
	if !resp.Total.Equal(decimal.NewFromInt(100)) {
		t.Errorf("total: expected 100, got %s", resp.Total)
	}
	if got := len(s.recorder.OfType(events.GroupExpenseAdded)); got != 2 {
		t.Errorf("expected 2 %s events, got %d", events.GroupExpenseAdded, got)
	}

	for _, index := range []int{5, -1} {
		out, err := s.groups.RemoveExpense(ctx, connect.NewRequest(&api.RemoveExpenseRequest{GroupID: id, Index: index}))
		if err != nil {
			t.Fatalf("RemoveExpense(%d) failed: %v", index, err)
		}
		if len(out.Msg.Group.Expenses) != 2 {
			t.Errorf("RemoveExpense(%d): expected no-op, got %d expenses", index, len(out.Msg.Group.Expenses))
		}
	}

	out, err := s.groups.RemoveExpense(ctx, connect.NewRequest(&api.RemoveExpenseRequest{GroupID: id, Index: 0}))
	if err != nil {
		t.Fatalf("RemoveExpense failed: %v", err)
	}
	if len(out.Msg.Group.Expenses) != 1 || out.Msg.Group.Expenses[0].Payer != "Bob" {
		t.Errorf("unexpected expenses %+v", out.Msg.Group.Expenses)
	}

	_, err = s.groups.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{GroupID: "missing", Amount: decimal.NewFromInt(1)}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestSplitExpense(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	id := createGroup(t, s, "Dinner", "A", "B", "C")
	addExpense(t, s, id, "90", "A")

	zero, past := 0, 3
	amount := decimal.NewFromInt(200)
	tests := []struct {
		name string
		req  *api.SplitExpenseRequest
		want map[string]string
	}{
		{
			name: "equal split of a stored expense",
			req:  &api.SplitExpenseRequest{GroupID: id, ExpenseIndex: &zero},
			want: map[string]string{"A": "30", "B": "30", "C": "30"},
		},
		{
			name: "percentage split of an explicit amount",
			req: &api.SplitExpenseRequest{
				Amount:      &amount,
				Members:     []string{"A", "B"},
				Method:      "percentage",
				Percentages: []decimal.Decimal{decimal.NewFromInt(75), decimal.NewFromInt(25)},
			},
			want: map[string]string{"A": "150", "B": "50"},
		},
		{
			name: "missing percentage owes nothing",
			req: &api.SplitExpenseRequest{
				GroupID:     id,
				Amount:      &amount,
				Method:      "percentage",
				Percentages: []decimal.Decimal{decimal.NewFromInt(50), decimal.NewFromInt(50)},
			},
			want: map[string]string{"A": "100", "B": "100", "C": "0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.groups.SplitExpense(ctx, connect.NewRequest(tt.req))
			if err != nil {
				t.Fatalf("SplitExpense failed: %v", err)
			}
			if len(resp.Msg.Shares) != len(tt.want) {
				t.Fatalf("expected %d shares, got %d", len(tt.want), len(resp.Msg.Shares))
			}
			for member, want := range tt.want {
				if got := resp.Msg.Shares[member]; !got.Equal(decimal.RequireFromString(want)) {
					t.Errorf("%s: expected %s, got %s", member, want, got)
				}
			}
		})
	}

	errorTests := []struct {
		name string
		req  *api.SplitExpenseRequest
		code connect.Code
	}{
		{"unknown method", &api.SplitExpenseRequest{Amount: &amount, Members: []string{"A"}, Method: "shares"}, connect.CodeInvalidArgument},
		{"no members", &api.SplitExpenseRequest{Amount: &amount, Members: []string{}}, connect.CodeInvalidArgument},
		{"nothing to split", &api.SplitExpenseRequest{Members: []string{"A"}}, connect.CodeInvalidArgument},
		{"expense index out of range", &api.SplitExpenseRequest{GroupID: id, ExpenseIndex: &past}, connect.CodeInvalidArgument},
		{"unknown group", &api.SplitExpenseRequest{GroupID: "missing"}, connect.CodeNotFound},
	}

	for _, tt := range errorTests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.groups.SplitExpense(ctx, connect.NewRequest(tt.req))
			assertCode(t, err, tt.code)
		})
	}
}

func TestSplitExpense_Strict(t *testing.T) {
	s := newTestServer(t, true)
	amount := decimal.NewFromInt(100)

	_, err := s.groups.SplitExpense(context.Background(), connect.NewRequest(&api.SplitExpenseRequest{
		Amount:      &amount,
		Members:     []string{"A", "B"},
		Method:      "percentage",
		Percentages: []decimal.Decimal{decimal.NewFromInt(60)},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestGetGroupBalances(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	id := createGroup(t, s, "Flat", "Alice", "Bob", "Charlie")

	addExpense(t, s, id, "90", "Alice")
	addExpense(t, s, id, "30", "Bob")

	resp, err := s.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: id}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	msg := resp.Msg

	if !msg.Total.Equal(decimal.NewFromInt(120)) {
		t.Errorf("total: expected 120, got %s", msg.Total)
	}
	for member, share := range msg.EqualShares {
		if !share.Equal(decimal.NewFromInt(40)) {
			t.Errorf("%s: expected equal share 40, got %s", member, share)
		}
	}

	want := map[string]string{"Alice": "50", "Bob": "-10", "Charlie": "-40"}
	if len(msg.Balances) != len(want) {
		t.Fatalf("expected %d balances, got %d", len(want), len(msg.Balances))
	}
	for _, b := range msg.Balances {
		if !b.NetBalance.Equal(decimal.RequireFromString(want[b.Member])) {
			t.Errorf("%s: expected net %s, got %s", b.Member, want[b.Member], b.NetBalance)
		}
	}

	owed := decimal.Zero
	for _, d := range msg.Debts {
		if d.To != "Alice" {
			t.Errorf("expected every debt to settle with Alice, got %+v", d)
		}
		owed = owed.Add(d.Amount)
	}
	if !owed.Equal(decimal.NewFromInt(50)) {
		t.Errorf("debts: expected 50 in total, got %s", owed)
	}
}

func TestGetGroupBalances_AllMembersRemoved(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	id := createGroup(t, s, "Trip", "Alice")
	addExpense(t, s, id, "30", "Alice")

	if _, err := s.groups.RemoveMember(ctx, connect.NewRequest(&api.RemoveMemberRequest{GroupID: id, MemberID: "Alice"})); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}

	resp, err := s.groups.GetGroupBalances(ctx, connect.NewRequest(&api.GetGroupBalancesRequest{GroupID: id}))
	if err != nil {
		t.Fatalf("GetGroupBalances failed: %v", err)
	}
	msg := resp.Msg
	if len(msg.EqualShares) != 0 || len(msg.Debts) != 0 {
		t.Errorf("expected no shares and no debts, got %v and %+v", msg.EqualShares, msg.Debts)
	}
	if len(msg.Balances) != 1 || !msg.Balances[0].TotalPaid.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected Alice credited with 30, got %+v", msg.Balances)
	}
}

func TestDeleteGroup(t *testing.T) {
	s := newTestServer(t, false)
	ctx := context.Background()
	id := createGroup(t, s, "Temp", "A")

	if _, err := s.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: id})); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}

	_, err := s.groups.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{GroupID: id}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = s.groups.DeleteGroup(ctx, connect.NewRequest(&api.DeleteGroupRequest{GroupID: id}))
	assertCode(t, err, connect.CodeNotFound)
}
