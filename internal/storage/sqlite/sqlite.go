// Package sqlite provides a SQLite-backed implementation of storage.DocumentStore.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/fintrack/internal/storage"
)

// Ensure SQLiteStore implements storage.DocumentStore
var _ storage.DocumentStore = (*SQLiteStore)(nil)

// SQLiteStore implements storage.DocumentStore and auth.UserStorage using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create persists record as a new document.
func (s *SQLiteStore) Create(ctx context.Context, collection string, record any) (string, error) {
	id, body, err := storage.PrepareDocument(record, func() string { return uuid.New().String() })
	if err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		collection, id, string(body), now, now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Get retrieves a document by ID.
func (s *SQLiteStore) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	return getDocument(ctx, s.db, collection, id)
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getDocument(ctx context.Context, q queryer, collection, id string) (storage.Document, error) {
	var (
		doc  storage.Document
		body string
	)
	err := q.QueryRowContext(ctx,
		"SELECT id, body, created_at FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	).Scan(&doc.ID, &body, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.Document{}, fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}
	if err != nil {
		return storage.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	doc.Body = []byte(body)
	return doc, nil
}

// ReadAll returns every document in collection, oldest first.
func (s *SQLiteStore) ReadAll(ctx context.Context, collection string) ([]storage.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, body, created_at FROM documents WHERE collection = ? ORDER BY seq",
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	docs := []storage.Document{}
	for rows.Next() {
		var (
			doc  storage.Document
			body string
		)
		if err := rows.Scan(&doc.ID, &body, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Body = []byte(body)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}

	return docs, nil
}

// Update merges partial into the stored document.
func (s *SQLiteStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	doc, err := getDocument(ctx, tx, collection, id)
	if err != nil {
		return err
	}

	merged, err := storage.MergeDocument(doc.Body, partial)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE documents SET body = ?, updated_at = ? WHERE collection = ? AND id = ?",
		string(merged), time.Now().UnixMilli(), collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete removes a document.
func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = ? AND id = ?",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}

	return nil
}
