package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/fintrack/internal/api"
	"github.com/mmynk/fintrack/internal/api/apiconnect"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
	"github.com/mmynk/fintrack/internal/trend"
)

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// LedgerService implements the Connect LedgerService.
type LedgerService struct {
	store storage.DocumentStore
	opts  Options
	locks entityLocks
}

// NewLedgerService creates a new LedgerService with the given storage backend.
func NewLedgerService(store storage.DocumentStore, opts Options) *LedgerService {
	return &LedgerService{store: store, opts: opts.withDefaults()}
}

func (s *LedgerService) load(ctx context.Context) ([]models.Transaction, error) {
	return storage.List[models.Transaction](ctx, s.store, storage.CollectionTransactions)
}

func validateTransaction(tx models.Transaction) error {
	if !tx.Type.Valid() {
		return invalidArgument("type must be %q or %q, got %q", models.TransactionIncome, models.TransactionExpense, tx.Type)
	}
	if tx.Amount.IsNegative() {
		return invalidArgument("amount must not be negative, got %s", tx.Amount)
	}
	if tx.Date == "" {
		return invalidArgument("date is required")
	}
	return nil
}

// AddTransaction records a transaction and returns it with the new balance.
func (s *LedgerService) AddTransaction(ctx context.Context, req *connect.Request[api.AddTransactionRequest]) (*connect.Response[api.AddTransactionResponse], error) {
	slog.Info("AddTransaction request received",
		"type", req.Msg.Type,
		"amount", req.Msg.Amount,
		"category", req.Msg.Category,
	)

	tx := models.Transaction{
		ID:          s.opts.IDs.NewID(),
		Date:        req.Msg.Date,
		Amount:      req.Msg.Amount,
		Category:    req.Msg.Category,
		Description: req.Msg.Description,
		Payer:       req.Msg.Payer,
		Type:        req.Msg.Type,
		CreatedAt:   s.opts.Clock().UnixMilli(),
	}
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}

	// the returned balance covers every earlier insert
	defer s.locks.lock(storage.CollectionTransactions)()

	existing, err := s.load(ctx)
	if err != nil {
		slog.Error("AddTransaction failed to load ledger", "error", err)
		return nil, toConnectError(err)
	}

	if _, err := s.store.Create(ctx, storage.CollectionTransactions, tx); err != nil {
		slog.Error("AddTransaction failed", "error", err)
		return nil, toConnectError(err)
	}

	balance := ledger.Balance(existing).Add(ledger.BalanceDelta(tx, false))
	s.opts.Metrics.TransactionRecorded(string(tx.Type))
	s.opts.Events.Emit(ctx, events.New(events.TransactionCreated, tx.ID, tx))

	slog.Info("Transaction recorded", "transaction_id", tx.ID, "balance", balance)

	return connect.NewResponse(&api.AddTransactionResponse{
		Transaction: tx,
		Balance:     balance,
	}), nil
}

// ListTransactions returns the filtered and sorted ledger.
func (s *LedgerService) ListTransactions(ctx context.Context, req *connect.Request[api.ListTransactionsRequest]) (*connect.Response[api.ListTransactionsResponse], error) {
	slog.Info("ListTransactions request received",
		"date", req.Msg.Date,
		"category", req.Msg.Category,
		"type", req.Msg.Type,
		"sort", req.Msg.Sort,
	)

	order, err := ledger.ParseSortOrder(req.Msg.Sort)
	if err != nil {
		return nil, invalidArgument("%v", err)
	}

	txs, err := s.load(ctx)
	if err != nil {
		slog.Error("ListTransactions failed", "error", err)
		return nil, toConnectError(err)
	}

	txs = ledger.Filter(txs, ledger.Criteria{
		Date:      req.Msg.Date,
		Category:  req.Msg.Category,
		MinAmount: req.Msg.MinAmount,
		MaxAmount: req.Msg.MaxAmount,
		Type:      req.Msg.Type,
	})
	txs = ledger.Sort(txs, order)

	slog.Info("ListTransactions successful", "count", len(txs))

	return connect.NewResponse(&api.ListTransactionsResponse{Transactions: txs}), nil
}

// UpdateTransaction replaces every editable field of an existing transaction.
// The insertion timestamp is kept.
func (s *LedgerService) UpdateTransaction(ctx context.Context, req *connect.Request[api.UpdateTransactionRequest]) (*connect.Response[api.UpdateTransactionResponse], error) {
	tx := req.Msg.Transaction
	slog.Info("UpdateTransaction request received", "transaction_id", tx.ID)

	if tx.ID == "" {
		return nil, invalidArgument("transaction id is required")
	}
	if err := validateTransaction(tx); err != nil {
		return nil, err
	}

	defer s.locks.lock(tx.ID)()

	current, err := storage.Load[models.Transaction](ctx, s.store, storage.CollectionTransactions, tx.ID)
	if err != nil {
		slog.Error("UpdateTransaction failed", "transaction_id", tx.ID, "error", err)
		return nil, toConnectError(err)
	}
	tx.CreatedAt = current.CreatedAt

	fields, err := storage.Fields(tx)
	if err != nil {
		return nil, toConnectError(err)
	}
	// omitempty would otherwise keep stale optional values
	fields["description"] = tx.Description
	fields["payer"] = tx.Payer

	if err := s.store.Update(ctx, storage.CollectionTransactions, tx.ID, fields); err != nil {
		slog.Error("UpdateTransaction failed", "transaction_id", tx.ID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Transaction updated", "transaction_id", tx.ID)

	return connect.NewResponse(&api.UpdateTransactionResponse{Transaction: tx}), nil
}

// DeleteTransaction removes a transaction by ID.
func (s *LedgerService) DeleteTransaction(ctx context.Context, req *connect.Request[api.DeleteTransactionRequest]) (*connect.Response[api.DeleteTransactionResponse], error) {
	slog.Info("DeleteTransaction request received", "transaction_id", req.Msg.ID)

	tx, err := storage.Load[models.Transaction](ctx, s.store, storage.CollectionTransactions, req.Msg.ID)
	if err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.Delete(ctx, storage.CollectionTransactions, req.Msg.ID); err != nil {
		slog.Error("DeleteTransaction failed", "transaction_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}

	s.opts.Events.Emit(ctx, events.New(events.TransactionDeleted, tx.ID, tx))
	slog.Info("Transaction deleted", "transaction_id", tx.ID)

	return connect.NewResponse(&api.DeleteTransactionResponse{}), nil
}

// GetSummary aggregates the ledger: totals by type, category totals and the
// daily trend.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	slog.Info("GetSummary request received",
		"type", req.Msg.Type,
		"calendar_date", req.Msg.CalendarDate,
		"unified_dates", req.Msg.UnifiedDates,
	)

	if req.Msg.Type != "" && !req.Msg.Type.Valid() {
		return nil, invalidArgument("unknown transaction type %q", req.Msg.Type)
	}

	txs, err := s.load(ctx)
	if err != nil {
		slog.Error("GetSummary failed", "error", err)
		return nil, toConnectError(err)
	}
	if req.Msg.CalendarDate != "" {
		txs = ledger.FilterByCalendarDate(txs, req.Msg.CalendarDate)
	}

	summary := ledger.Summarize(txs)

	selected := txs
	if req.Msg.Type != "" {
		selected = ledger.ByType(txs, req.Msg.Type)
	}
	daily := trend.DailyTotals(selected)
	if req.Msg.UnifiedDates {
		daily = trend.DailyTotalsByCalendarDate(selected)
	}

	return connect.NewResponse(&api.GetSummaryResponse{
		TotalIncome:    summary.TotalIncome,
		TotalExpense:   summary.TotalExpense,
		Balance:        summary.Balance,
		Count:          summary.Count,
		CategoryTotals: ledger.Categorize(selected),
		DailyTotals:    daily,
		Series:         trend.Series(daily),
	}), nil
}
