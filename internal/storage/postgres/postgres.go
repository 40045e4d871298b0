// Package postgres provides a PostgreSQL-backed implementation of
// storage.DocumentStore. Document bodies are stored as JSONB.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/mmynk/fintrack/internal/models"
	"github.com/mmynk/fintrack/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ storage.DocumentStore = (*PostgresStore)(nil)

// PostgresStore implements storage.DocumentStore and auth.UserStorage.
type PostgresStore struct {
	db *sql.DB
}

// ConnectOptions controls how long New waits for the database to come up.
type ConnectOptions struct {
	Retries    int
	RetryDelay time.Duration
}

// DefaultConnectOptions waits up to a minute.
var DefaultConnectOptions = ConnectOptions{Retries: 30, RetryDelay: 2 * time.Second}

// New connects to databaseURL, waiting for the server to accept connections,
// and runs migrations.
func New(ctx context.Context, databaseURL string, opts ConnectOptions) (*PostgresStore, error) {
	config, err := pgx.ParseConfig(normalizeURL(databaseURL))
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	db := stdlib.OpenDB(*config)
	if err := waitForDB(ctx, db, opts); err != nil {
		db.Close()
		return nil, err
	}

	if err := runMigrations(config); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// normalizeURL rewrites postgresql:// to postgres:// and defaults sslmode to disable.
func normalizeURL(databaseURL string) string {
	if strings.HasPrefix(databaseURL, "postgresql://") {
		databaseURL = "postgres://" + strings.TrimPrefix(databaseURL, "postgresql://")
	}
	if strings.HasPrefix(databaseURL, "postgres://") && !strings.Contains(databaseURL, "sslmode=") {
		sep := "?"
		if strings.Contains(databaseURL, "?") {
			sep = "&"
		}
		databaseURL += sep + "sslmode=disable"
	}
	return databaseURL
}

func waitForDB(ctx context.Context, db *sql.DB, opts ConnectOptions) error {
	retries := max(opts.Retries, 1)
	var err error
	for i := 0; i < retries; i++ {
		if err = db.PingContext(ctx); err == nil {
			slog.Info("Database connection established")
			return nil
		}
		if i == retries-1 {
			break
		}
		slog.Warn("Database not ready, retrying", "attempt", i+1, "of", retries, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(opts.RetryDelay):
		}
	}
	return fmt.Errorf("failed to connect to database after %d attempts: %w", retries, err)
}

// runMigrations uses a dedicated connection since closing the migrate
// instance closes its database.
func runMigrations(config *pgx.ConnConfig) error {
	migrateDB := stdlib.OpenDB(*config)
	defer migrateDB.Close()

	driver, err := migratepgx.WithInstance(migrateDB, &migratepgx.Config{})
	if err != nil {
		return fmt.Errorf("create pgx driver: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Close closes the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Create persists record as a new document.
func (s *PostgresStore) Create(ctx context.Context, collection string, record any) (string, error) {
	id, body, err := storage.PrepareDocument(record, func() string { return uuid.New().String() })
	if err != nil {
		return "", err
	}

	now := time.Now().UnixMilli()
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body, created_at, updated_at) VALUES ($1, $2, $3::jsonb, $4, $4)",
		collection, id, string(body), now,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id, nil
}

// Get retrieves a document by ID.
func (s *PostgresStore) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	var (
		doc  storage.Document
		body string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, body::text, created_at FROM documents WHERE collection = $1 AND id = $2",
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
func (s *PostgresStore) ReadAll(ctx context.Context, collection string) ([]storage.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, body::text, created_at FROM documents WHERE collection = $1 ORDER BY seq",
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

// Update merges partial into the stored document with the jsonb || operator.
func (s *PostgresStore) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	patch := make(map[string]any, len(partial))
	for k, v := range partial {
		if k != "id" {
			patch[k] = v
		}
	}
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("failed to encode update: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE documents SET body = body || $1::jsonb, updated_at = $2 WHERE collection = $3 AND id = $4",
		string(body), time.Now().UnixMilli(), collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}
	return expectOneRow(result, collection, id)
}

// Delete removes a document.
func (s *PostgresStore) Delete(ctx context.Context, collection, id string) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection = $1 AND id = $2",
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return expectOneRow(result, collection, id)
}

func expectOneRow(result sql.Result, collection, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s/%s", storage.ErrNotFound, collection, id)
	}
	return nil
}

const userColumns = "id, email, display_name, password_hash, created_at, updated_at"

// CreateUser inserts a new user.
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users ("+userColumns+") VALUES ($1, $2, $3, $4, $5, $6)",
		user.ID, user.Email, user.DisplayName, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByEmail returns nil, nil when no user matches.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email", email)
}

// GetUserByID returns nil, nil when no user matches.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.getUser(ctx, "id", id)
}

func (s *PostgresStore) getUser(ctx context.Context, column, value string) (*models.User, error) {
	user := &models.User{}
	err := s.db.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+column+" = $1",
		value,
	).Scan(&user.ID, &user.Email, &user.DisplayName, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return user, nil
}
