// Package storagetest holds behavior tests shared by every
// storage.DocumentStore implementation.
package storagetest

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

// Run exercises store against the DocumentStore contract. The store must be
// empty for the collections it touches.
func Run(t *testing.T, store storage.DocumentStore) {
	ctx := context.Background()
	const coll = storage.CollectionTransactions

	t.Run("Create generates ID", func(t *testing.T) {
		id, err := store.Create(ctx, coll, models.Transaction{
			Date:     "2024-01-15",
			Amount:   decimal.NewFromInt(100),
			Category: "salary",
			Type:     models.TransactionIncome,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if id == "" {
			t.Fatal("Expected document ID to be generated")
		}

		doc, err := store.Get(ctx, coll, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		tx, err := storage.Decode[models.Transaction](doc)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if tx.ID != id {
			t.Errorf("ID mismatch: got %s, want %s", tx.ID, id)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Amount mismatch: got %s, want 100", tx.Amount)
		}
		if tx.Type != models.TransactionIncome {
			t.Errorf("Type mismatch: got %s", tx.Type)
		}
	})

	t.Run("Create keeps preset ID", func(t *testing.T) {
		id, err := store.Create(ctx, storage.CollectionGoals, models.Goal{ID: "preset-goal", Owner: "alice"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if id != "preset-goal" {
			t.Errorf("Expected preset ID, got %s", id)
		}
	})

	t.Run("Get returns ErrNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, coll, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("ReadAll preserves insertion order", func(t *testing.T) {
		const groups = storage.CollectionGroups
		names := []string{"first", "second", "third"}
		for _, name := range names {
			if _, err := store.Create(ctx, groups, models.Group{Name: name}); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
		}

		docs, err := store.ReadAll(ctx, groups)
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}
		got, err := storage.DecodeAll[models.Group](docs)
		if err != nil {
			t.Fatalf("DecodeAll failed: %v", err)
		}
		if len(got) != len(names) {
			t.Fatalf("Expected %d groups, got %d", len(names), len(got))
		}
		for i, g := range got {
			if g.Name != names[i] {
				t.Errorf("groups[%d] = %s, want %s", i, g.Name, names[i])
			}
		}
	})

	t.Run("ReadAll of empty collection", func(t *testing.T) {
		docs, err := store.ReadAll(ctx, "empty-collection")
		if err != nil {
			t.Fatalf("ReadAll failed: %v", err)
		}
		if len(docs) != 0 {
			t.Errorf("Expected no documents, got %d", len(docs))
		}
	})

	t.Run("Update merges top-level fields", func(t *testing.T) {
		id, err := store.Create(ctx, coll, models.Transaction{
			Date:     "2024-02-01",
			Amount:   decimal.NewFromInt(40),
			Category: "food",
			Type:     models.TransactionExpense,
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := store.Update(ctx, coll, id, map[string]any{"category": "groceries", "id": "other"}); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		doc, err := store.Get(ctx, coll, id)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		tx, _ := storage.Decode[models.Transaction](doc)
		if tx.Category != "groceries" {
			t.Errorf("Category = %s, want groceries", tx.Category)
		}
		if tx.ID != id {
			t.Errorf("ID changed to %s", tx.ID)
		}
		if !tx.Amount.Equal(decimal.NewFromInt(40)) {
			t.Errorf("Amount = %s, want 40", tx.Amount)
		}
	})

	t.Run("Update returns ErrNotFound", func(t *testing.T) {
		err := store.Update(ctx, coll, "nonexistent-id", map[string]any{"category": "x"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		id, err := store.Create(ctx, coll, models.Transaction{Amount: decimal.NewFromInt(1), Type: models.TransactionExpense})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		if err := store.Delete(ctx, coll, id); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get(ctx, coll, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, coll, id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})

	t.Run("Collections are isolated", func(t *testing.T) {
		id, err := store.Create(ctx, "isolated-a", map[string]any{"name": "a"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := store.Get(ctx, "isolated-b", id); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound across collections, got %v", err)
		}
	})
}
