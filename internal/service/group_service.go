package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/api"
	"github.com/mmynk/fintrack/internal/api/apiconnect"
	"github.com/mmynk/fintrack/internal/calculator"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/group"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store     storage.DocumentStore
	allocator *group.Allocator
	opts      Options
	locks     entityLocks
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.DocumentStore, opts Options) *GroupService {
	opts = opts.withDefaults()
	return &GroupService{
		store:     store,
		allocator: group.NewAllocator(opts.IDs, opts.Clock),
		opts:      opts,
	}
}

func (s *GroupService) get(ctx context.Context, id string) (models.Group, error) {
	if id == "" {
		return models.Group{}, invalidArgument("group id is required")
	}
	return storage.Load[models.Group](ctx, s.store, storage.CollectionGroups, id)
}

func (s *GroupService) save(ctx context.Context, g models.Group) error {
	fields, err := storage.Fields(g)
	if err != nil {
		return err
	}
	return s.store.Update(ctx, storage.CollectionGroups, g.ID, fields)
}

func groupResponse(g models.Group) *connect.Response[api.GroupResponse] {
	return connect.NewResponse(&api.GroupResponse{Group: g, Total: group.Total(g)})
}

// modify loads a group, applies fn and stores the result. Calls on the same
// group run one at a time.
func (s *GroupService) modify(ctx context.Context, id string, fn func(models.Group) (models.Group, error)) (models.Group, error) {
	defer s.locks.lock(id)()

	g, err := s.get(ctx, id)
	if err != nil {
		return models.Group{}, err
	}
	g, err = fn(g)
	if err != nil {
		return models.Group{}, err
	}
	if err := s.save(ctx, g); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	g, err := s.allocator.Create(req.Msg.Name, req.Msg.Members)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	if _, err := s.store.Create(ctx, storage.CollectionGroups, g); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group created", "group_id", g.ID)

	return groupResponse(g), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	g, err := s.get(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("GetGroup successful", "group_id", g.ID, "name", g.Name)

	return groupResponse(g), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := storage.List[models.Group](ctx, s.store, storage.CollectionGroups)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("ListGroups successful", "count", len(groups))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// RenameGroup changes a group's display name.
func (s *GroupService) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("RenameGroup request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	g, err := s.modify(ctx, req.Msg.GroupID, func(g models.Group) (models.Group, error) {
		return s.allocator.Rename(g, req.Msg.Name), nil
	})
	if err != nil {
		slog.Error("RenameGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return groupResponse(g), nil
}

// DeleteGroup removes a group by ID.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.store.Delete(ctx, storage.CollectionGroups, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddMember adds a member to a group.
func (s *GroupService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("AddMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	if req.Msg.MemberID == "" {
		return nil, invalidArgument("member id is required")
	}

	g, err := s.modify(ctx, req.Msg.GroupID, func(g models.Group) (models.Group, error) {
		return s.allocator.AddMember(g, req.Msg.MemberID)
	})
	if err != nil {
		slog.Error("AddMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return groupResponse(g), nil
}

// RemoveMember removes a member from a group. Their expenses stay.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "member_id", req.Msg.MemberID)

	g, err := s.modify(ctx, req.Msg.GroupID, func(g models.Group) (models.Group, error) {
		return s.allocator.RemoveMember(g, req.Msg.MemberID), nil
	})
	if err != nil {
		slog.Error("RemoveMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return groupResponse(g), nil
}

// AddExpense appends an expense to a group.
func (s *GroupService) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("AddExpense request received",
		"group_id", req.Msg.GroupID,
		"amount", req.Msg.Amount,
		"payer", req.Msg.Payer,
	)

	if req.Msg.Amount.IsNegative() {
		return nil, invalidArgument("amount must not be negative, got %s", req.Msg.Amount)
	}

	expense := models.GroupExpense{
		Date:        req.Msg.Date,
		Amount:      req.Msg.Amount,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		Payer:       req.Msg.Payer,
	}
	g, err := s.modify(ctx, req.Msg.GroupID, func(g models.Group) (models.Group, error) {
		return s.allocator.AddExpense(g, expense), nil
	})
	if err != nil {
		slog.Error("AddExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	added := g.Expenses[len(g.Expenses)-1]
	s.opts.Events.Emit(ctx, events.New(events.GroupExpenseAdded, g.ID, added))
	slog.Info("Expense added", "group_id", g.ID, "expense_id", added.ID, "total", group.Total(g))

	return groupResponse(g), nil
}

// RemoveExpense drops the expense at the given position.
func (s *GroupService) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("RemoveExpense request received", "group_id", req.Msg.GroupID, "index", req.Msg.Index)

	g, err := s.modify(ctx, req.Msg.GroupID, func(g models.Group) (models.Group, error) {
		return s.allocator.RemoveExpense(g, req.Msg.Index), nil
	})
	if err != nil {
		slog.Error("RemoveExpense failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return groupResponse(g), nil
}

// SplitExpense allocates an amount across members without storing anything.
func (s *GroupService) SplitExpense(ctx context.Context, req *connect.Request[api.SplitExpenseRequest]) (*connect.Response[api.SplitExpenseResponse], error) {
	slog.Info("SplitExpense request received",
		"group_id", req.Msg.GroupID,
		"method", req.Msg.Method,
		"members_count", len(req.Msg.Members),
	)

	method, err := calculator.ParseMethod(req.Msg.Method)
	if err != nil {
		return nil, toConnectError(err)
	}

	members := req.Msg.Members
	var expense models.GroupExpense
	switch {
	case req.Msg.GroupID != "":
		g, err := s.get(ctx, req.Msg.GroupID)
		if err != nil {
			slog.Error("SplitExpense failed", "group_id", req.Msg.GroupID, "error", err)
			return nil, toConnectError(err)
		}
		if members == nil {
			members = g.MemberIDs()
		}
		switch {
		case req.Msg.ExpenseIndex != nil:
			i := *req.Msg.ExpenseIndex
			if i < 0 || i >= len(g.Expenses) {
				return nil, invalidArgument("expense index %d out of range", i)
			}
			expense = g.Expenses[i]
		case req.Msg.Amount != nil:
			expense.Amount = *req.Msg.Amount
		default:
			expense.Amount = group.Total(g)
		}
	case req.Msg.Amount != nil:
		expense.Amount = *req.Msg.Amount
	default:
		return nil, invalidArgument("either a group or an amount is required")
	}

	shares, err := group.Split(expense, members, method, req.Msg.Percentages, calculator.SplitOptions{Strict: s.opts.StrictPercentages})
	if err != nil {
		slog.Error("SplitExpense failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Split calculated", "amount", expense.Amount, "members_count", len(shares))

	return connect.NewResponse(&api.SplitExpenseResponse{
		Method: string(method),
		Shares: shares,
	}), nil
}

// GetGroupBalances returns who paid what, who owes what and the payments
// that settle the group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	slog.Info("GetGroupBalances request received", "group_id", req.Msg.GroupID)

	g, err := s.get(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	balances, debts, err := group.Balances(g)
	if err != nil {
		slog.Error("GetGroupBalances failed", "group_id", g.ID, "error", err)
		return nil, toConnectError(err)
	}

	equal := map[string]decimal.Decimal{}
	if len(g.Members) > 0 {
		if equal, err = group.SplitTotal(g); err != nil {
			return nil, toConnectError(err)
		}
	}

	resp := &api.GetGroupBalancesResponse{
		Total:       group.Total(g),
		EqualShares: equal,
		Balances:    make([]api.MemberBalance, len(balances)),
		Debts:       make([]api.Debt, len(debts)),
	}
	for i, b := range balances {
		resp.Balances[i] = api.MemberBalance{
			Member:     b.MemberName,
			NetBalance: b.NetBalance,
			TotalPaid:  b.TotalPaid,
			TotalOwed:  b.TotalOwed,
		}
	}
	for i, d := range debts {
		resp.Debts[i] = api.Debt{From: d.From, To: d.To, Amount: d.Amount}
	}

	slog.Info("GetGroupBalances successful", "group_id", g.ID, "debts_count", len(debts))

	return connect.NewResponse(resp), nil
}
