package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/mmynk/fintrack/internal/storage/storagetest"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"postgresql://u:p@db:5432/fin", "postgres://u:p@db:5432/fin?sslmode=disable"},
		{"postgres://db/fin?application_name=x", "postgres://db/fin?application_name=x&sslmode=disable"},
		{"postgres://db/fin?sslmode=require", "postgres://db/fin?sslmode=require"},
		{"host=db user=u", "host=db user=u"},
	}
	for _, tt := range tests {
		if got := normalizeURL(tt.in); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := New(ctx, url, ConnectOptions{Retries: 3, RetryDelay: time.Second})
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	if _, err := store.db.ExecContext(ctx, "TRUNCATE documents"); err != nil {
		t.Fatalf("Failed to reset documents: %v", err)
	}

	storagetest.Run(t, store)
}
