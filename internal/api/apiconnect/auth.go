package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "fintrack.v1.AuthService"

const (
	AuthServiceRegisterProcedure       = "/fintrack.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/fintrack.v1.AuthService/Login"
	AuthServiceGetCurrentUserProcedure = "/fintrack.v1.AuthService/GetCurrentUser"
)

// PublicProcedures can be called without a session token.
var PublicProcedures = []string{
	AuthServiceRegisterProcedure,
	AuthServiceLoginProcedure,
}

// AuthServiceHandler is implemented by the auth service.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(AuthServiceName, opts)
	handle(m, AuthServiceRegisterProcedure, svc.Register)
	handle(m, AuthServiceLoginProcedure, svc.Login)
	handle(m, AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser)
	return m.handler()
}

// AuthServiceClient is a client for the fintrack.v1.AuthService service.
type AuthServiceClient interface {
	AuthServiceHandler
}

// NewAuthServiceClient constructs a client for the fintrack.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) AuthServiceClient {
	return &authServiceClient{
		register:       newClient[api.RegisterRequest, api.AuthResponse](httpClient, baseURL, AuthServiceRegisterProcedure, opts),
		login:          newClient[api.LoginRequest, api.AuthResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts),
		getCurrentUser: newClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts),
	}
}

type authServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.AuthResponse]
	login          *connect.Client[api.LoginRequest, api.AuthResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
}

func (c *authServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *authServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.AuthResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *authServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}
