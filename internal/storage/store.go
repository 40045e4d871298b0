// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Collections used by the services.
const (
	CollectionTransactions = "transactions"
	CollectionGroups       = "groups"
	CollectionGoals        = "goals"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Document is a stored JSON object. Body always contains the document's "id".
type Document struct {
	ID        string
	Body      json.RawMessage
	CreatedAt int64
}

// DocumentStore defines the interface for document storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// a Redis-cached variant) without changing the service layer.
type DocumentStore interface {
	// Create persists record as a new document in collection and returns its
	// ID. A non-empty "id" field on the record is kept, otherwise one is
	// generated.
	Create(ctx context.Context, collection string, record any) (string, error)

	// Get retrieves a document by its ID.
	// Returns ErrNotFound if the document does not exist.
	Get(ctx context.Context, collection, id string) (Document, error)

	// ReadAll returns every document of collection in insertion order.
	ReadAll(ctx context.Context, collection string) ([]Document, error)

	// Update merges partial into the stored document's top-level fields.
	// Returns ErrNotFound if the document does not exist.
	Update(ctx context.Context, collection, id string, partial map[string]any) error

	// Delete removes a document.
	// Returns ErrNotFound if the document does not exist.
	Delete(ctx context.Context, collection, id string) error

	// Close releases any resources held by the store.
	Close() error
}

// Pinger is implemented by stores that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks s when it implements Pinger and reports success otherwise.
func Ping(ctx context.Context, s DocumentStore) error {
	if p, ok := s.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Decode unmarshals a document body into T.
func Decode[T any](doc Document) (T, error) {
	var v T
	if err := json.Unmarshal(doc.Body, &v); err != nil {
		return v, fmt.Errorf("failed to decode document %s: %w", doc.ID, err)
	}
	return v, nil
}

// DecodeAll unmarshals every document, preserving order.
func DecodeAll[T any](docs []Document) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := Decode[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// PrepareDocument turns record into a JSON object carrying an "id". newID is
// called only when the record has no id of its own.
func PrepareDocument(record any, newID func() string) (string, []byte, error) {
	fields, err := Fields(record)
	if err != nil {
		return "", nil, err
	}
	id, _ := fields["id"].(string)
	if id == "" {
		id = newID()
		fields["id"] = id
	}
	body, err := json.Marshal(fields)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return id, body, nil
}

// MergeDocument applies partial on top of body. The "id" field cannot be changed.
func MergeDocument(body []byte, partial map[string]any) ([]byte, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode stored document: %w", err)
	}
	id := fields["id"]
	for k, v := range partial {
		fields[k] = v
	}
	fields["id"] = id
	merged, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}
	return merged, nil
}

// Fields encodes record into its top-level JSON fields.
func Fields(record any) (map[string]any, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("record must encode to a JSON object: %w", err)
	}
	if fields == nil {
		return nil, errors.New("record must encode to a JSON object")
	}
	return fields, nil
}

// List reads and decodes every document of collection in insertion order.
func List[T any](ctx context.Context, s DocumentStore, collection string) ([]T, error) {
	docs, err := s.ReadAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	return DecodeAll[T](docs)
}

// Load reads and decodes a single document.
func Load[T any](ctx context.Context, s DocumentStore, collection, id string) (T, error) {
	doc, err := s.Get(ctx, collection, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](doc)
}
