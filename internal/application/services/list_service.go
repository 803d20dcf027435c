package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// ListService keeps every user-scoped list (tasks, habits, schedules)
// synchronized between in-memory state, the remote store and the local
// cache, prioritizing perceived responsiveness over strict consistency.
// The optimistic state machine is implemented once here and instantiated
// per (owner, kind); the former per-widget duplicates collapse into this.
type ListService struct {
	repo   ports.ListRepository
	cache  ports.LocalCache
	logger *logger.Logger

	mu     sync.Mutex
	states map[listKey]*listState[entities.ListItem]
}

type listKey struct {
	owner uuid.UUID
	kind  entities.ListKind
}

// NewListService creates a new list service
func NewListService(repo ports.ListRepository, cache ports.LocalCache, logger *logger.Logger) *ListService {
	return &ListService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		states: make(map[listKey]*listState[entities.ListItem]),
	}
}

func (s *ListService) state(owner uuid.UUID, kind entities.ListKind) *listState[entities.ListItem] {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := listKey{owner: owner, kind: kind}
	st, ok := s.states[key]
	if !ok {
		st = &listState[entities.ListItem]{}
		s.states[key] = st
	}
	return st
}

// Load fetches the owner's full list from the remote store, replaces local
// state and mirrors it to the cache. On store failure it hydrates the last
// known-good copy from the cache instead; degraded is true in that case and
// the store error is still returned so callers can surface it. State is
// never left partially loaded.
func (s *ListService) Load(ctx context.Context, owner uuid.UUID, kind entities.ListKind) (items []entities.ListItem, degraded bool, err error) {
	if owner == uuid.Nil {
		return nil, false, entities.ErrNoOwner
	}
	if !kind.IsValid() {
		return nil, false, entities.ErrUnknownListKind
	}

	st := s.state(owner, kind)
	st.beginSync()
	defer st.endSync()

	fresh, err := s.repo.ListByOwner(ctx, kind, owner)
	if err != nil {
		s.logger.Errorw("Failed to load list", "kind", kind, "owner_id", owner, "error", err)
		if cached, ok := hydrate[entities.ListItem](ctx, s.cache, owner, string(kind)); ok {
			st.replace(cached)
			return cached, true, err
		}
		return nil, false, err
	}

	st.replace(fresh)
	if mErr := mirror(ctx, s.cache, owner, string(kind), fresh); mErr != nil {
		s.logger.Warnw("Failed to mirror list to cache", "kind", kind, "error", mErr)
	}

	return fresh, false, nil
}

// Items returns the current in-memory list.
func (s *ListService) Items(owner uuid.UUID, kind entities.ListKind) []entities.ListItem {
	return s.state(owner, kind).snapshot()
}

// Syncing reports whether a remote write is in flight for the list.
// Advisory only.
func (s *ListService) Syncing(owner uuid.UUID, kind entities.ListKind) bool {
	return s.state(owner, kind).Syncing()
}

// Add appends an item optimistically under a temporary time-derived ID, then
// inserts it into the store. On success the temporary row is replaced by the
// store-assigned one; on failure the list reverts to its pre-mutation
// snapshot and the error wraps the rejected text so clients can restore the
// input field.
func (s *ListService) Add(ctx context.Context, owner uuid.UUID, kind entities.ListKind, text string) (*entities.ListItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entities.ErrEmptyText
	}
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}
	if !kind.IsValid() {
		return nil, entities.ErrUnknownListKind
	}

	tempID := time.Now().UnixMilli()
	pending := entities.ListItem{
		ID:        tempID,
		Text:      text,
		Completed: false,
		OwnerID:   owner,
	}

	st := s.state(owner, kind)
	prev := st.mutate(func(items []entities.ListItem) []entities.ListItem {
		return append(items, pending)
	})

	st.beginSync()
	defer st.endSync()

	created, err := s.repo.Insert(ctx, kind, &pending)
	if err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to add item", "kind", kind, "owner_id", owner, "error", err)
		return nil, fmt.Errorf("add %q: %w", text, err)
	}

	st.mutate(func(items []entities.ListItem) []entities.ListItem {
		kept := items[:0]
		for _, it := range items {
			if it.ID != tempID {
				kept = append(kept, it)
			}
		}
		return append(kept, *created)
	})

	if mErr := mirror(ctx, s.cache, owner, string(kind), st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror list to cache", "kind", kind, "error", mErr)
	}

	return created, nil
}

// Toggle flips the completed flag optimistically, then pushes an update
// scoped to both id and owner. On failure the pre-toggle snapshot comes
// back.
func (s *ListService) Toggle(ctx context.Context, owner uuid.UUID, kind entities.ListKind, id int64) error {
	if owner == uuid.Nil {
		return entities.ErrNoOwner
	}
	if !kind.IsValid() {
		return entities.ErrUnknownListKind
	}

	st := s.state(owner, kind)

	var completed bool
	found := false
	for _, it := range st.snapshot() {
		if it.ID == id {
			completed = !it.Completed
			found = true
			break
		}
	}
	if !found {
		return entities.ErrItemNotFound
	}

	now := time.Now()
	prev := st.mutate(func(items []entities.ListItem) []entities.ListItem {
		for i := range items {
			if items[i].ID == id {
				items[i].Completed = completed
				items[i].UpdatedAt = now
			}
		}
		return items
	})

	st.beginSync()
	defer st.endSync()

	if err := s.repo.SetCompleted(ctx, kind, id, owner, completed, now); err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to toggle item", "kind", kind, "id", id, "error", err)
		return err
	}

	if mErr := mirror(ctx, s.cache, owner, string(kind), st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror list to cache", "kind", kind, "error", mErr)
	}

	return nil
}

// Delete removes the item optimistically, then deletes it from the store
// scoped to id and owner. Failure reverts.
func (s *ListService) Delete(ctx context.Context, owner uuid.UUID, kind entities.ListKind, id int64) error {
	if owner == uuid.Nil {
		return entities.ErrNoOwner
	}
	if !kind.IsValid() {
		return entities.ErrUnknownListKind
	}

	st := s.state(owner, kind)
	prev := st.mutate(func(items []entities.ListItem) []entities.ListItem {
		kept := items[:0]
		for _, it := range items {
			if it.ID != id {
				kept = append(kept, it)
			}
		}
		return kept
	})

	st.beginSync()
	defer st.endSync()

	if err := s.repo.Delete(ctx, kind, id, owner); err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to delete item", "kind", kind, "id", id, "error", err)
		return err
	}

	if mErr := mirror(ctx, s.cache, owner, string(kind), st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror list to cache", "kind", kind, "error", mErr)
	}

	return nil
}

// ClearCompleted removes every completed item locally and issues one batch
// delete by ID list. The task widget is the only caller. Same revert
// contract as the single-item mutations.
func (s *ListService) ClearCompleted(ctx context.Context, owner uuid.UUID, kind entities.ListKind) error {
	if owner == uuid.Nil {
		return entities.ErrNoOwner
	}
	if !kind.IsValid() {
		return entities.ErrUnknownListKind
	}

	st := s.state(owner, kind)

	var ids []int64
	for _, it := range st.snapshot() {
		if it.Completed {
			ids = append(ids, it.ID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	prev := st.mutate(func(items []entities.ListItem) []entities.ListItem {
		kept := items[:0]
		for _, it := range items {
			if !it.Completed {
				kept = append(kept, it)
			}
		}
		return kept
	})

	st.beginSync()
	defer st.endSync()

	if err := s.repo.DeleteMany(ctx, kind, ids, owner); err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to clear completed items", "kind", kind, "owner_id", owner, "error", err)
		return err
	}

	if mErr := mirror(ctx, s.cache, owner, string(kind), st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror list to cache", "kind", kind, "error", mErr)
	}

	return nil
}
