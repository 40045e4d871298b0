package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "fintrack.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure      = "/fintrack.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure         = "/fintrack.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure       = "/fintrack.v1.GroupService/ListGroups"
	GroupServiceRenameGroupProcedure      = "/fintrack.v1.GroupService/RenameGroup"
	GroupServiceDeleteGroupProcedure      = "/fintrack.v1.GroupService/DeleteGroup"
	GroupServiceAddMemberProcedure        = "/fintrack.v1.GroupService/AddMember"
	GroupServiceRemoveMemberProcedure     = "/fintrack.v1.GroupService/RemoveMember"
	GroupServiceAddExpenseProcedure       = "/fintrack.v1.GroupService/AddExpense"
	GroupServiceRemoveExpenseProcedure    = "/fintrack.v1.GroupService/RemoveExpense"
	GroupServiceSplitExpenseProcedure     = "/fintrack.v1.GroupService/SplitExpense"
	GroupServiceGetGroupBalancesProcedure = "/fintrack.v1.GroupService/GetGroupBalances"
)

// GroupServiceHandler is implemented by the group service.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	RenameGroup(context.Context, *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error)
	AddExpense(context.Context, *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.GroupResponse], error)
	RemoveExpense(context.Context, *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.GroupResponse], error)
	SplitExpense(context.Context, *connect.Request[api.SplitExpenseRequest]) (*connect.Response[api.SplitExpenseResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(GroupServiceName, opts)
	handle(m, GroupServiceCreateGroupProcedure, svc.CreateGroup)
	handle(m, GroupServiceGetGroupProcedure, svc.GetGroup)
	handle(m, GroupServiceListGroupsProcedure, svc.ListGroups)
	handle(m, GroupServiceRenameGroupProcedure, svc.RenameGroup)
	handle(m, GroupServiceDeleteGroupProcedure, svc.DeleteGroup)
	handle(m, GroupServiceAddMemberProcedure, svc.AddMember)
	handle(m, GroupServiceRemoveMemberProcedure, svc.RemoveMember)
	handle(m, GroupServiceAddExpenseProcedure, svc.AddExpense)
	handle(m, GroupServiceRemoveExpenseProcedure, svc.RemoveExpense)
	handle(m, GroupServiceSplitExpenseProcedure, svc.SplitExpense)
	handle(m, GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances)
	return m.handler()
}

// GroupServiceClient is a client for the fintrack.v1.GroupService service.
type GroupServiceClient interface {
	GroupServiceHandler
}

// NewGroupServiceClient constructs a client for the fintrack.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	return &groupServiceClient{
		createGroup:      newClient[api.CreateGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceCreateGroupProcedure, opts),
		getGroup:         newClient[api.GetGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceGetGroupProcedure, opts),
		listGroups:       newClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL, GroupServiceListGroupsProcedure, opts),
		renameGroup:      newClient[api.RenameGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRenameGroupProcedure, opts),
		deleteGroup:      newClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL, GroupServiceDeleteGroupProcedure, opts),
		addMember:        newClient[api.AddMemberRequest, api.GroupResponse](httpClient, baseURL, GroupServiceAddMemberProcedure, opts),
		removeMember:     newClient[api.RemoveMemberRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRemoveMemberProcedure, opts),
		addExpense:       newClient[api.AddExpenseRequest, api.GroupResponse](httpClient, baseURL, GroupServiceAddExpenseProcedure, opts),
		removeExpense:    newClient[api.RemoveExpenseRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRemoveExpenseProcedure, opts),
		splitExpense:     newClient[api.SplitExpenseRequest, api.SplitExpenseResponse](httpClient, baseURL, GroupServiceSplitExpenseProcedure, opts),
		getGroupBalances: newClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL, GroupServiceGetGroupBalancesProcedure, opts),
	}
}

type groupServiceClient struct {
	createGroup      *connect.Client[api.CreateGroupRequest, api.GroupResponse]
	getGroup         *connect.Client[api.GetGroupRequest, api.GroupResponse]
	listGroups       *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	renameGroup      *connect.Client[api.RenameGroupRequest, api.GroupResponse]
	deleteGroup      *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addMember        *connect.Client[api.AddMemberRequest, api.GroupResponse]
	removeMember     *connect.Client[api.RemoveMemberRequest, api.GroupResponse]
	addExpense       *connect.Client[api.AddExpenseRequest, api.GroupResponse]
	removeExpense    *connect.Client[api.RemoveExpenseRequest, api.GroupResponse]
	splitExpense     *connect.Client[api.SplitExpenseRequest, api.SplitExpenseResponse]
	getGroupBalances *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.renameGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddExpense(ctx context.Context, req *connect.Request[api.AddExpenseRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.addExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveExpense(ctx context.Context, req *connect.Request[api.RemoveExpenseRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) SplitExpense(ctx context.Context, req *connect.Request[api.SplitExpenseRequest]) (*connect.Response[api.SplitExpenseResponse], error) {
	return c.splitExpense.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}
