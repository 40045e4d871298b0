// Package ids provides injectable identity and time sources so the domain
// packages never depend on hidden global counters or the wall clock.
package ids

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique identifiers.
type Generator interface {
	NewID() string
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func() string

// NewID implements Generator.
func (f GeneratorFunc) NewID() string { return f() }

// UUID generates random version 4 UUIDs.
type UUID struct{}

// NewID implements Generator.
func (UUID) NewID() string { return uuid.New().String() }

// Sequence is a process-scoped monotonic generator producing "<prefix>-1",
// "<prefix>-2", ... It is safe for concurrent use.
type Sequence struct {
	mu     sync.Mutex
	prefix string
	next   int64
}

// NewSequence returns a Sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix, next: 1}
}

// NewID implements Generator.
func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("%s-%d", s.prefix, s.next)
	s.next++
	return id
}

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time { return time.Now().UTC() }

// FixedClock returns a Clock that always reports t.
func FixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
