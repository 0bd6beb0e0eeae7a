/*
Package store defines durable blob storage for application snapshots.

PURPOSE:
  The persistence layer is a small string-keyed blob store: each key holds
  one JSON document (the leave collection, the notification collection, or
  the active session). This mirrors the original deployment target, where
  the same three keys lived in browser local storage.

KEYS:
  leaves-data         array of LeaveRequest
  notifications-data  array of Notification
  current-user        single Identity, absent when logged out

CONTRACT:
  Get on a missing key returns ok=false, not an error. Put replaces the
  whole value for a key. Delete on a missing key is a no-op. Writes are
  synchronous and best-effort; the caller logs failures and carries on
  against in-memory state.

IMPLEMENTATIONS:
  - Memory (this package): for tests and throwaway runs
  - store/sqlite:          production, one row per key
*/
package store

import (
	"context"
	"sync"
)

// Storage keys, shared by every implementation.
const (
	KeyLeaves        = "leaves-data"
	KeyNotifications = "notifications-data"
	KeySession       = "current-user"
)

// Blob is a string-keyed durable blob store.
type Blob interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Put replaces the value for key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.blobs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := make([]byte, len(value))
	copy(v, value)
	m.blobs[key] = v
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.blobs, key)
	return nil
}

func (m *Memory) Close() error { return nil }
