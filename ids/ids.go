// Package ids provides identifier generation for leave requests and
// notifications. Generators are injected as dependencies so tests can use a
// deterministic sequence instead of clock- or entropy-derived values.
package ids

import (
	"fmt"
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Generator produces unique identifiers for the two entity kinds.
type Generator interface {
	// LeaveID returns a lexicographically sortable id, so ids created later
	// sort after ids created earlier.
	LeaveID() string

	// NotificationID returns an id that must not collide even when two
	// notifications are generated within the same millisecond.
	NotificationID() string
}

// =============================================================================
// PRODUCTION GENERATOR - ULID for leaves, UUID for notifications
// =============================================================================

// ULID generates leave ids from a monotonic ULID source and notification ids
// as random UUIDs. Safe for concurrent use.
type ULID struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewULID returns a generator seeded from the current time.
func NewULID() *ULID {
	return &ULID{
		entropy: ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0),
	}
}

func (g *ULID) LeaveID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

func (g *ULID) NotificationID() string {
	return uuid.NewString()
}

// =============================================================================
// SEQUENCE GENERATOR - Deterministic ids for tests
// =============================================================================

// Sequence numbers ids with a shared counter: leave-001, notif-002, ...
type Sequence struct {
	mu sync.Mutex
	n  int
}

func NewSequence() *Sequence { return &Sequence{} }

func (g *Sequence) LeaveID() string        { return g.next("leave") }
func (g *Sequence) NotificationID() string { return g.next("notif") }

func (g *Sequence) next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%03d", prefix, g.n)
}
