package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// listState is the in-memory half of the optimistic sync pattern shared by
// every list-backed widget: mutate locally first, push to the remote store,
// revert to the pre-mutation snapshot on failure. One listState exists per
// (owner, list) pair.
//
// The mutex protects memory, nothing more. Remote writes happen outside it,
// so overlapping mutations are not serialized: the last local write and the
// last remote acknowledgment win independently, and state may transiently
// diverge from the store until the next Load. That matches the source
// system's contract; stronger ordering would need a per-list mutation queue.
type listState[T any] struct {
	mu      sync.Mutex
	items   []T
	loaded  bool
	syncing atomic.Int32
}

// snapshot returns a copy of the current items.
func (s *listState[T]) snapshot() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]T(nil), s.items...)
}

// replace installs items as the new state.
func (s *listState[T]) replace(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	s.loaded = true
}

// mutate applies fn to a copy of the current items, installs the result and
// returns the pre-mutation snapshot for a possible revert.
func (s *listState[T]) mutate(fn func([]T) []T) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := append([]T(nil), s.items...)
	s.items = fn(append([]T(nil), s.items...))
	s.loaded = true
	return prev
}

// restore reverts to a previously taken snapshot.
func (s *listState[T]) restore(prev []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = prev
}

// beginSync and endSync maintain the advisory syncing counter. It is UI
// state, not a mutex.
func (s *listState[T]) beginSync() { s.syncing.Add(1) }
func (s *listState[T]) endSync()   { s.syncing.Add(-1) }

// Syncing reports whether any remote write is in flight.
func (s *listState[T]) Syncing() bool { return s.syncing.Load() > 0 }

// mirror writes the current known-good list to the local cache. Mirror
// failures are swallowed by callers; the cache is best-effort.
func mirror[T any](ctx context.Context, cache ports.LocalCache, ownerID uuid.UUID, key string, items []T) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return cache.Set(ctx, ownerID, key, blob)
}

// hydrate reads a cached list back. Missing or corrupt entries come back as
// (nil, false): corrupt cache data is treated as no cached data.
func hydrate[T any](ctx context.Context, cache ports.LocalCache, ownerID uuid.UUID, key string) ([]T, bool) {
	blob, err := cache.Get(ctx, ownerID, key)
	if err != nil {
		return nil, false
	}
	var items []T
	if err := json.Unmarshal(blob, &items); err != nil {
		return nil, false
	}
	return items, true
}
