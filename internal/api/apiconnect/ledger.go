package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "fintrack.v1.LedgerService"

const (
	LedgerServiceAddTransactionProcedure    = "/fintrack.v1.LedgerService/AddTransaction"
	LedgerServiceListTransactionsProcedure  = "/fintrack.v1.LedgerService/ListTransactions"
	LedgerServiceUpdateTransactionProcedure = "/fintrack.v1.LedgerService/UpdateTransaction"
	LedgerServiceDeleteTransactionProcedure = "/fintrack.v1.LedgerService/DeleteTransaction"
	LedgerServiceGetSummaryProcedure        = "/fintrack.v1.LedgerService/GetSummary"
)

// LedgerServiceHandler is implemented by the ledger service.
type LedgerServiceHandler interface {
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(LedgerServiceName, opts)
	handle(m, LedgerServiceAddTransactionProcedure, svc.AddTransaction)
	handle(m, LedgerServiceListTransactionsProcedure, svc.ListTransactions)
	handle(m, LedgerServiceUpdateTransactionProcedure, svc.UpdateTransaction)
	handle(m, LedgerServiceDeleteTransactionProcedure, svc.DeleteTransaction)
	handle(m, LedgerServiceGetSummaryProcedure, svc.GetSummary)
	return m.handler()
}

// LedgerServiceClient is a client for the fintrack.v1.LedgerService service.
type LedgerServiceClient interface {
	AddTransaction(context.Context, *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error)
	ListTransactions(context.Context, *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error)
	UpdateTransaction(context.Context, *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error)
	DeleteTransaction(context.Context, *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewLedgerServiceClient constructs a client for the fintrack.v1.LedgerService
// service. baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	return &ledgerServiceClient{
		addTransaction:    newClient[api.AddTransactionRequest, api.AddTransactionResponse](httpClient, baseURL, LedgerServiceAddTransactionProcedure, opts),
		listTransactions:  newClient[api.ListTransactionsRequest, api.ListTransactionsResponse](httpClient, baseURL, LedgerServiceListTransactionsProcedure, opts),
		updateTransaction: newClient[api.UpdateTransactionRequest, api.UpdateTransactionResponse](httpClient, baseURL, LedgerServiceUpdateTransactionProcedure, opts),
		deleteTransaction: newClient[api.DeleteTransactionRequest, api.DeleteTransactionResponse](httpClient, baseURL, LedgerServiceDeleteTransactionProcedure, opts),
		getSummary:        newClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL, LedgerServiceGetSummaryProcedure, opts),
	}
}

type ledgerServiceClient struct {
	addTransaction    *connect.Client[api.AddTransactionRequest, api.AddTransactionResponse]
	listTransactions  *connect.Client[api.ListTransactionsRequest, api.ListTransactionsResponse]
	updateTransaction *connect.Client[api.UpdateTransactionRequest, api.UpdateTransactionResponse]
	deleteTransaction *connect.Client[api.DeleteTransactionRequest, api.DeleteTransactionResponse]
	getSummary        *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

func (c *ledgerServiceClient) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	return c.addTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	return c.listTransactions.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	return c.updateTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	return c.deleteTransaction.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
