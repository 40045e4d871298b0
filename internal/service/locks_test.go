package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/api"
	"github.com/mmynk/fintrack/internal/ids"
	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// slowStore widens the window between reading a document and writing it back.
type slowStore struct {
	storage.DocumentStore
}

func (s slowStore) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	time.Sleep(5 * time.Millisecond)
	return s.DocumentStore.Get(ctx, collection, id)
}

func testOptions() Options {
	return Options{IDs: ids.NewSequence("id"), Clock: ids.FixedClock(testNow)}
}

func TestAddExpense_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := slowStore{newTestStore(t)}
	svc := NewGroupService(store, testOptions())

	created, err := svc.CreateGroup(ctx, connect.NewRequest(&api.CreateGroupRequest{
		Name:    "Flat",
		Members: []string{"Alice", "Bob"},
	}))
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	groupID := created.Msg.Group.ID

	const n = 10
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddExpense(ctx, connect.NewRequest(&api.AddExpenseRequest{
				GroupID:  groupID,
				Date:     "2025-01-01",
				Amount:   decimal.NewFromInt(10),
				Category: "Food",
				Payer:    "Alice",
			}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("AddExpense failed: %v", err)
		}
	}

	g, err := storage.Load[models.Group](ctx, store, storage.CollectionGroups, groupID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(g.Expenses) != n {
		t.Errorf("expenses: expected %d, got %d", n, len(g.Expenses))
	}
}

func TestContribute_Concurrent(t *testing.T) {
	ctx := context.Background()
	store := slowStore{newTestStore(t)}
	svc := NewGoalService(store, testOptions())

	created, err := svc.CreateGoal(ctx, connect.NewRequest(&api.CreateGoalRequest{
		Owner:        "alice",
		TargetAmount: decimal.NewFromInt(1000),
		Deadline:     "2025-01-11",
	}))
	if err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}
	goalID := created.Msg.Goal.Goal.ID

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Contribute(ctx, connect.NewRequest(&api.ContributeRequest{
				GoalID: goalID,
				Amount: decimal.NewFromInt(25),
			})); err != nil {
				t.Errorf("Contribute failed: %v", err)
			}
		}()
	}
	wg.Wait()

	g, err := storage.Load[models.Goal](ctx, store, storage.CollectionGoals, goalID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !g.CurrentAmount.Equal(decimal.NewFromInt(250)) {
		t.Errorf("current amount: expected 250, got %s", g.CurrentAmount)
	}
}
