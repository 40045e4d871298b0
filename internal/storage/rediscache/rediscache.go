// Package rediscache wraps a storage.DocumentStore with a Redis read cache for
// whole-collection reads. Any write to a collection invalidates its entry.
//
// A read that overlaps a write in the same process never repopulates the
// cache. Writes made by another process are seen once the entry expires.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mmynk/fintrack/internal/storage"
)

const keyPrefix = "fintrack:collection:"

// DefaultTTL is used when New is given a non-positive ttl.
const DefaultTTL = 60 * time.Second

// Cache is the subset of redis.Cmdable the store needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEx(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

var _ storage.DocumentStore = (*Store)(nil)

// Store is a caching storage.DocumentStore.
type Store struct {
	inner storage.DocumentStore
	cache Cache
	ttl   time.Duration

	mu          sync.Mutex
	generations map[string]uint64 // bumped by every committed write
}

// New wraps inner. Cache failures are logged and never fail a call.
func New(inner storage.DocumentStore, cache Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{inner: inner, cache: cache, ttl: ttl, generations: make(map[string]uint64)}
}

// Connect parses a Redis URL (a bare host:port is accepted) and pings the server.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	if !strings.Contains(redisURL, "://") {
		redisURL = "redis://" + redisURL
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func cacheKey(collection string) string {
	return keyPrefix + collection
}

// ReadAll serves the collection from Redis when present.
func (s *Store) ReadAll(ctx context.Context, collection string) ([]storage.Document, error) {
	key := cacheKey(collection)

	cached, err := s.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var docs []storage.Document
		if jsonErr := json.Unmarshal(cached, &docs); jsonErr == nil {
			return docs, nil
		}
		slog.Warn("Discarding corrupt cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		slog.Warn("Cache read failed", "key", key, "error", err)
	}

	gen := s.generation(collection)
	docs, err := s.inner.ReadAll(ctx, collection)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(docs); err == nil {
		s.fill(ctx, collection, gen, data)
	}
	return docs, nil
}

func (s *Store) generation(collection string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[collection]
}

// fill caches data unless a write committed since gen was taken.
func (s *Store) fill(ctx context.Context, collection string, gen uint64, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[collection] != gen {
		return
	}
	key := cacheKey(collection)
	if err := s.cache.SetEx(ctx, key, data, s.ttl).Err(); err != nil {
		slog.Warn("Cache write failed", "key", key, "error", err)
	}
}

// Get is not cached.
func (s *Store) Get(ctx context.Context, collection, id string) (storage.Document, error) {
	return s.inner.Get(ctx, collection, id)
}

// Create writes through and invalidates the collection.
func (s *Store) Create(ctx context.Context, collection string, record any) (string, error) {
	id, err := s.inner.Create(ctx, collection, record)
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, collection)
	return id, nil
}

// Update writes through and invalidates the collection.
func (s *Store) Update(ctx context.Context, collection, id string, partial map[string]any) error {
	if err := s.inner.Update(ctx, collection, id, partial); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}

// Delete writes through and invalidates the collection.
func (s *Store) Delete(ctx context.Context, collection, id string) error {
	if err := s.inner.Delete(ctx, collection, id); err != nil {
		return err
	}
	s.invalidate(ctx, collection)
	return nil
}

// Close closes the wrapped store. The Redis client is owned by the caller.
func (s *Store) Close() error {
	return s.inner.Close()
}

// Ping checks the wrapped store. An unreachable cache only degrades reads,
// so it is not reported.
func (s *Store) Ping(ctx context.Context) error {
	return storage.Ping(ctx, s.inner)
}

func (s *Store) invalidate(ctx context.Context, collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[collection]++
	if err := s.cache.Del(ctx, cacheKey(collection)).Err(); err != nil {
		slog.Warn("Cache invalidation failed", "collection", collection, "error", err)
	}
}
