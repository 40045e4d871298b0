package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/api"
)

// GoalServiceName is the fully-qualified name of the GoalService service.
const GoalServiceName = "fintrack.v1.GoalService"

const (
	GoalServiceCreateGoalProcedure  = "/fintrack.v1.GoalService/CreateGoal"
	GoalServiceListGoalsProcedure   = "/fintrack.v1.GoalService/ListGoals"
	GoalServiceContributeProcedure  = "/fintrack.v1.GoalService/Contribute"
	GoalServiceGetProgressProcedure = "/fintrack.v1.GoalService/GetProgress"
	GoalServiceDeleteGoalProcedure  = "/fintrack.v1.GoalService/DeleteGoal"
)

// GoalServiceHandler is implemented by the goal service.
type GoalServiceHandler interface {
	CreateGoal(context.Context, *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.GoalResponse], error)
	ListGoals(context.Context, *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error)
	Contribute(context.Context, *connect.Request[api.ContributeRequest]) (*connect.Response[api.GoalResponse], error)
	GetProgress(context.Context, *connect.Request[api.GetProgressRequest]) (*connect.Response[api.GoalResponse], error)
	DeleteGoal(context.Context, *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error)
}

// NewGoalServiceHandler builds an HTTP handler from the service implementation.
func NewGoalServiceHandler(svc GoalServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(GoalServiceName, opts)
	handle(m, GoalServiceCreateGoalProcedure, svc.CreateGoal)
	handle(m, GoalServiceListGoalsProcedure, svc.ListGoals)
	handle(m, GoalServiceContributeProcedure, svc.Contribute)
	handle(m, GoalServiceGetProgressProcedure, svc.GetProgress)
	handle(m, GoalServiceDeleteGoalProcedure, svc.DeleteGoal)
	return m.handler()
}

// GoalServiceClient is a client for the fintrack.v1.GoalService service.
type GoalServiceClient interface {
	GoalServiceHandler
}

// NewGoalServiceClient constructs a client for the fintrack.v1.GoalService service.
func NewGoalServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GoalServiceClient {
	return &goalServiceClient{
		createGoal:  newClient[api.CreateGoalRequest, api.GoalResponse](httpClient, baseURL, GoalServiceCreateGoalProcedure, opts),
		listGoals:   newClient[api.ListGoalsRequest, api.ListGoalsResponse](httpClient, baseURL, GoalServiceListGoalsProcedure, opts),
		contribute:  newClient[api.ContributeRequest, api.GoalResponse](httpClient, baseURL, GoalServiceContributeProcedure, opts),
		getProgress: newClient[api.GetProgressRequest, api.GoalResponse](httpClient, baseURL, GoalServiceGetProgressProcedure, opts),
		deleteGoal:  newClient[api.DeleteGoalRequest, api.DeleteGoalResponse](httpClient, baseURL, GoalServiceDeleteGoalProcedure, opts),
	}
}

type goalServiceClient struct {
	createGoal  *connect.Client[api.CreateGoalRequest, api.GoalResponse]
	listGoals   *connect.Client[api.ListGoalsRequest, api.ListGoalsResponse]
	contribute  *connect.Client[api.ContributeRequest, api.GoalResponse]
	getProgress *connect.Client[api.GetProgressRequest, api.GoalResponse]
	deleteGoal  *connect.Client[api.DeleteGoalRequest, api.DeleteGoalResponse]
}

func (c *goalServiceClient) CreateGoal(ctx context.Context, req *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.GoalResponse], error) {
	return c.createGoal.CallUnary(ctx, req)
}

func (c *goalServiceClient) ListGoals(ctx context.Context, req *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error) {
	return c.listGoals.CallUnary(ctx, req)
}

func (c *goalServiceClient) Contribute(ctx context.Context, req *connect.Request[api.ContributeRequest]) (*connect.Response[api.GoalResponse], error) {
	return c.contribute.CallUnary(ctx, req)
}

func (c *goalServiceClient) GetProgress(ctx context.Context, req *connect.Request[api.GetProgressRequest]) (*connect.Response[api.GoalResponse], error) {
	return c.getProgress.CallUnary(ctx, req)
}

func (c *goalServiceClient) DeleteGoal(ctx context.Context, req *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error) {
	return c.deleteGoal.CallUnary(ctx, req)
}
