package app

import (
	"context"
	"encoding/json"
	"log"

	"github.com/campus/leaveflow/store"
	"github.com/campus/leaveflow/workflow"
)

// =============================================================================
// PERSISTENCE ADAPTER
// =============================================================================
//
// Snapshot semantics: each mutation to the leave or notification collection
// rewrites both documents. The session key is written independently at login
// and cleared at logout. All failures are logged and swallowed; the in-memory
// state remains authoritative (worst case: the latest mutation is lost on
// restart).

// load restores the three snapshot keys. Each key is independent: a missing
// or undecodable value leaves only that collection empty. Caller holds no
// lock; load runs once from New before the App is shared.
func (a *App) load(ctx context.Context) {
	if ok := loadKey(ctx, a.blob, store.KeyLeaves, &a.leaves); ok {
		for i := range a.leaves {
			a.leaveIndex[a.leaves[i].ID] = i
		}
	}
	loadKey(ctx, a.blob, store.KeyNotifications, &a.notifications)

	var id workflow.Identity
	if ok := loadKey(ctx, a.blob, store.KeySession, &id); ok {
		a.session = &id
	}
}

// loadKey decodes one key into dst, reporting whether a value was restored.
// Decoding goes through a scratch value: json.Unmarshal partially populates
// its destination on type errors, and a half-decoded snapshot must not leak
// into the live collection. On any failure dst is left untouched.
func loadKey[T any](ctx context.Context, blob store.Blob, key string, dst *T) bool {
	raw, ok, err := blob.Get(ctx, key)
	if err != nil {
		log.Printf("app: %v", &workflow.PersistenceError{Key: key, Op: "load", Err: err})
		return false
	}
	if !ok {
		return false
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Printf("app: %v", &workflow.PersistenceError{Key: key, Op: "load", Err: err})
		return false
	}
	*dst = v
	return true
}

// save snapshots the leave and notification collections. Caller holds a.mu.
func (a *App) save(ctx context.Context) {
	saveKey(ctx, a.blob, store.KeyLeaves, a.leaves)
	saveKey(ctx, a.blob, store.KeyNotifications, a.notifications)
}

func saveKey(ctx context.Context, blob store.Blob, key string, src any) {
	raw, err := json.Marshal(src)
	if err != nil {
		log.Printf("app: %v", &workflow.PersistenceError{Key: key, Op: "save", Err: err})
		return
	}
	if err := blob.Put(ctx, key, raw); err != nil {
		log.Printf("app: %v", &workflow.PersistenceError{Key: key, Op: "save", Err: err})
	}
}

// saveSession persists the active session. Caller holds a.mu.
func (a *App) saveSession(ctx context.Context) {
	saveKey(ctx, a.blob, store.KeySession, a.session)
}

// clearSession erases the persisted session entry. Caller holds a.mu.
func (a *App) clearSession(ctx context.Context) {
	if err := a.blob.Delete(ctx, store.KeySession); err != nil {
		log.Printf("app: %v", &workflow.PersistenceError{Key: store.KeySession, Op: "save", Err: err})
	}
}
