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

const noteCacheKey = "notes"

// NoteService is the notes instantiation of the optimistic sync pattern.
// Notes carry a title and content instead of text and completed, but the
// lifecycle is the same: mutate locally, push, revert on failure, mirror
// the known-good list to the cache.
type NoteService struct {
	repo   ports.NoteRepository
	cache  ports.LocalCache
	logger *logger.Logger

	mu     sync.Mutex
	states map[uuid.UUID]*listState[entities.Note]
}

// NewNoteService creates a new note service
func NewNoteService(repo ports.NoteRepository, cache ports.LocalCache, logger *logger.Logger) *NoteService {
	return &NoteService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		states: make(map[uuid.UUID]*listState[entities.Note]),
	}
}

func (s *NoteService) state(owner uuid.UUID) *listState[entities.Note] {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[owner]
	if !ok {
		st = &listState[entities.Note]{}
		s.states[owner] = st
	}
	return st
}

// Load fetches all notes for the owner, falling back to the cached mirror
// when the store is unreachable.
func (s *NoteService) Load(ctx context.Context, owner uuid.UUID) (notes []entities.Note, degraded bool, err error) {
	if owner == uuid.Nil {
		return nil, false, entities.ErrNoOwner
	}

	st := s.state(owner)
	st.beginSync()
	defer st.endSync()

	fresh, err := s.repo.ListByOwner(ctx, owner)
	if err != nil {
		s.logger.Errorw("Failed to load notes", "owner_id", owner, "error", err)
		if cached, ok := hydrate[entities.Note](ctx, s.cache, owner, noteCacheKey); ok {
			st.replace(cached)
			return cached, true, err
		}
		return nil, false, err
	}

	st.replace(fresh)
	if mErr := mirror(ctx, s.cache, owner, noteCacheKey, fresh); mErr != nil {
		s.logger.Warnw("Failed to mirror notes to cache", "error", mErr)
	}

	return fresh, false, nil
}

// Add creates a note optimistically under a temporary ID.
func (s *NoteService) Add(ctx context.Context, owner uuid.UUID, title, content string) (*entities.Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, entities.ErrEmptyText
	}
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	tempID := time.Now().UnixMilli()
	pending := entities.Note{
		ID:      tempID,
		Title:   title,
		Content: content,
		OwnerID: owner,
	}

	st := s.state(owner)
	prev := st.mutate(func(notes []entities.Note) []entities.Note {
		return append(notes, pending)
	})

	st.beginSync()
	defer st.endSync()

	created, err := s.repo.Insert(ctx, &pending)
	if err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to add note", "owner_id", owner, "error", err)
		return nil, fmt.Errorf("add note %q: %w", title, err)
	}

	st.mutate(func(notes []entities.Note) []entities.Note {
		kept := notes[:0]
		for _, n := range notes {
			if n.ID != tempID {
				kept = append(kept, n)
			}
		}
		return append(kept, *created)
	})

	if mErr := mirror(ctx, s.cache, owner, noteCacheKey, st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror notes to cache", "error", mErr)
	}

	return created, nil
}

// Update edits title and/or content optimistically; nil fields stay as they
// are. Failure reverts to the pre-edit snapshot.
func (s *NoteService) Update(ctx context.Context, owner uuid.UUID, id int64, title, content *string) (*entities.Note, error) {
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	st := s.state(owner)

	var target *entities.Note
	for _, n := range st.snapshot() {
		if n.ID == id {
			n := n
			target = &n
			break
		}
	}
	if target == nil {
		return nil, entities.ErrNoteNotFound
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, entities.ErrEmptyText
		}
		target.Title = trimmed
	}
	if content != nil {
		target.Content = *content
	}
	target.UpdatedAt = time.Now()

	prev := st.mutate(func(notes []entities.Note) []entities.Note {
		for i := range notes {
			if notes[i].ID == id {
				notes[i] = *target
			}
		}
		return notes
	})

	st.beginSync()
	defer st.endSync()

	if err := s.repo.Update(ctx, target); err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to update note", "id", id, "error", err)
		return nil, err
	}

	if mErr := mirror(ctx, s.cache, owner, noteCacheKey, st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror notes to cache", "error", mErr)
	}

	return target, nil
}

// Delete removes a note optimistically; failure reverts.
func (s *NoteService) Delete(ctx context.Context, owner uuid.UUID, id int64) error {
	if owner == uuid.Nil {
		return entities.ErrNoOwner
	}

	st := s.state(owner)
	prev := st.mutate(func(notes []entities.Note) []entities.Note {
		kept := notes[:0]
		for _, n := range notes {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		return kept
	})

	st.beginSync()
	defer st.endSync()

	if err := s.repo.Delete(ctx, id, owner); err != nil {
		st.restore(prev)
		s.logger.Errorw("Failed to delete note", "id", id, "error", err)
		return err
	}

	if mErr := mirror(ctx, s.cache, owner, noteCacheKey, st.snapshot()); mErr != nil {
		s.logger.Warnw("Failed to mirror notes to cache", "error", mErr)
	}

	return nil
}

// Notes returns the current in-memory list.
func (s *NoteService) Notes(owner uuid.UUID) []entities.Note {
	return s.state(owner).snapshot()
}
