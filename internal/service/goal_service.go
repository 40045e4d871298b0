package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/api"
	"github.com/mmynk/fintrack/internal/api/apiconnect"
	"github.com/mmynk/fintrack/internal/events"
	"github.com/mmynk/fintrack/internal/goal"
	"github.com/mmynk/fintrack/internal/ledger"
	"github.com/mmynk/fintrack/internal/middleware"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

var _ apiconnect.GoalServiceHandler = (*GoalService)(nil)

// GoalService implements the Connect GoalService. Derived figures such as
// the required daily saving are computed against the current ledger balance.
type GoalService struct {
	store   storage.DocumentStore
	tracker *goal.Tracker
	opts    Options
	locks   entityLocks
}

// NewGoalService creates a new GoalService with the given storage backend.
func NewGoalService(store storage.DocumentStore, opts Options) *GoalService {
	opts = opts.withDefaults()
	return &GoalService{
		store:   store,
		tracker: goal.NewTracker(opts.IDs, opts.Clock),
		opts:    opts,
	}
}

// ViewGoal derives the progress figures of g. AveragePerDay stays nil once
// the deadline has passed.
func ViewGoal(g models.Goal, balance decimal.Decimal, today time.Time) api.GoalView {
	v := api.GoalView{
		Goal:          g,
		Progress:      goal.Progress(g),
		DaysRemaining: goal.DaysRemaining(g, today),
	}
	if avg, ok := goal.AveragePerDay(g, balance, today); ok {
		v.AveragePerDay = &avg
	} else {
		v.DeadlinePassed = true
	}
	return v
}

func (s *GoalService) balance(ctx context.Context) (decimal.Decimal, error) {
	txs, err := storage.List[models.Transaction](ctx, s.store, storage.CollectionTransactions)
	if err != nil {
		return decimal.Zero, err
	}
	return ledger.Balance(txs), nil
}

func (s *GoalService) today() time.Time {
	return ledger.CalendarDate(s.opts.Clock())
}

func (s *GoalService) respond(ctx context.Context, g models.Goal) (*connect.Response[api.GoalResponse], error) {
	balance, err := s.balance(ctx)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GoalResponse{Goal: ViewGoal(g, balance, s.today())}), nil
}

// CreateGoal creates a savings goal for the caller.
func (s *GoalService) CreateGoal(ctx context.Context, req *connect.Request[api.CreateGoalRequest]) (*connect.Response[api.GoalResponse], error) {
	owner := req.Msg.Owner
	if owner == "" {
		owner = middleware.GetUserID(ctx)
	}
	slog.Info("CreateGoal request received",
		"owner", owner,
		"target", req.Msg.TargetAmount,
		"deadline", req.Msg.Deadline,
	)

	deadline, err := ledger.ParseCalendarDate(req.Msg.Deadline)
	if err != nil {
		return nil, invalidArgument("invalid deadline %q", req.Msg.Deadline)
	}

	g, err := s.tracker.Create(owner, req.Msg.TargetAmount, deadline)
	if err != nil {
		slog.Error("CreateGoal failed", "error", err)
		return nil, toConnectError(err)
	}
	g.Description = req.Msg.Description

	if _, err := s.store.Create(ctx, storage.CollectionGoals, g); err != nil {
		slog.Error("CreateGoal failed", "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Goal created", "goal_id", g.ID)

	return s.respond(ctx, g)
}

// ListGoals lists the goals of an owner, defaulting to the caller.
func (s *GoalService) ListGoals(ctx context.Context, req *connect.Request[api.ListGoalsRequest]) (*connect.Response[api.ListGoalsResponse], error) {
	owner := req.Msg.Owner
	if owner == "" {
		owner = middleware.GetUserID(ctx)
	}
	slog.Info("ListGoals request received", "owner", owner)

	goals, err := storage.List[models.Goal](ctx, s.store, storage.CollectionGoals)
	if err != nil {
		slog.Error("ListGoals failed", "error", err)
		return nil, toConnectError(err)
	}
	balance, err := s.balance(ctx)
	if err != nil {
		slog.Error("ListGoals failed", "error", err)
		return nil, toConnectError(err)
	}

	today := s.today()
	views := []api.GoalView{}
	for _, g := range goals {
		if owner != "" && g.Owner != owner {
			continue
		}
		views = append(views, ViewGoal(g, balance, today))
	}

	slog.Info("ListGoals successful", "count", len(views))

	return connect.NewResponse(&api.ListGoalsResponse{Goals: views}), nil
}

// Contribute applies a contribution, which may be negative, to a goal.
func (s *GoalService) Contribute(ctx context.Context, req *connect.Request[api.ContributeRequest]) (*connect.Response[api.GoalResponse], error) {
	slog.Info("Contribute request received", "goal_id", req.Msg.GoalID, "amount", req.Msg.Amount)

	defer s.locks.lock(req.Msg.GoalID)()

	current, err := storage.Load[models.Goal](ctx, s.store, storage.CollectionGoals, req.Msg.GoalID)
	if err != nil {
		slog.Error("Contribute failed", "goal_id", req.Msg.GoalID, "error", err)
		return nil, toConnectError(err)
	}

	updated := s.tracker.ApplyContribution(current, req.Msg.Amount)
	err = s.store.Update(ctx, storage.CollectionGoals, updated.ID, map[string]any{
		"currentAmount": updated.CurrentAmount,
		"status":        updated.Status,
	})
	if err != nil {
		slog.Error("Contribute failed", "goal_id", updated.ID, "error", err)
		return nil, toConnectError(err)
	}

	if current.Status != models.GoalAchieved && updated.Status == models.GoalAchieved {
		s.opts.Metrics.GoalAchieved()
		s.opts.Events.Emit(ctx, events.New(events.GoalAchieved, updated.ID, updated))
		slog.Info("Goal achieved", "goal_id", updated.ID, "owner", updated.Owner)
	}

	return s.respond(ctx, updated)
}

// GetProgress returns a goal with its derived figures.
func (s *GoalService) GetProgress(ctx context.Context, req *connect.Request[api.GetProgressRequest]) (*connect.Response[api.GoalResponse], error) {
	slog.Info("GetProgress request received", "goal_id", req.Msg.GoalID)

	g, err := storage.Load[models.Goal](ctx, s.store, storage.CollectionGoals, req.Msg.GoalID)
	if err != nil {
		slog.Error("GetProgress failed", "goal_id", req.Msg.GoalID, "error", err)
		return nil, toConnectError(err)
	}

	return s.respond(ctx, g)
}

// DeleteGoal removes a goal by ID.
func (s *GoalService) DeleteGoal(ctx context.Context, req *connect.Request[api.DeleteGoalRequest]) (*connect.Response[api.DeleteGoalResponse], error) {
	slog.Info("DeleteGoal request received", "goal_id", req.Msg.GoalID)

	if err := s.store.Delete(ctx, storage.CollectionGoals, req.Msg.GoalID); err != nil {
		slog.Error("DeleteGoal failed", "goal_id", req.Msg.GoalID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteGoalResponse{}), nil
}
