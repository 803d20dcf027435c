package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
)

// fakeNoteRepo is an in-memory NoteRepository with failure injection.
type fakeNoteRepo struct {
	notes  []entities.Note
	nextID int64
	fail   bool
}

func newFakeNoteRepo() *fakeNoteRepo {
	return &fakeNoteRepo{nextID: 1}
}

func (r *fakeNoteRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Note, error) {
	if r.fail {
		return nil, errStoreDown
	}
	var out []entities.Note
	for _, n := range r.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNoteRepo) Insert(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	if r.fail {
		return nil, errStoreDown
	}
	created := *note
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.nextID++
	r.notes = append(r.notes, created)
	return &created, nil
}

func (r *fakeNoteRepo) Update(ctx context.Context, note *entities.Note) error {
	if r.fail {
		return errStoreDown
	}
	for i := range r.notes {
		if r.notes[i].ID == note.ID && r.notes[i].OwnerID == note.OwnerID {
			r.notes[i] = *note
			return nil
		}
	}
	return entities.ErrNoteNotFound
}

func (r *fakeNoteRepo) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	if r.fail {
		return errStoreDown
	}
	kept := r.notes[:0]
	found := false
	for _, n := range r.notes {
		if n.ID == id && n.OwnerID == ownerID {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	r.notes = kept
	if !found {
		return entities.ErrNoteNotFound
	}
	return nil
}

func newTestNoteService(t *testing.T) (*NoteService, *fakeNoteRepo) {
	t.Helper()
	repo := newFakeNoteRepo()
	return NewNoteService(repo, newMemCache(), logger.NewNop()), repo
}

func TestNoteAddReplacesTemporaryID(t *testing.T) {
	svc, _ := newTestNoteService(t)
	owner := uuid.New()

	created, err := svc.Add(context.Background(), owner, "groceries", "milk, eggs")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected store-assigned ID 1, got %d", created.ID)
	}

	notes := svc.Notes(owner)
	if len(notes) != 1 || notes[0].ID != 1 {
		t.Errorf("temporary ID not replaced: %v", notes)
	}
}

func TestNoteAddRejectsEmptyTitle(t *testing.T) {
	svc, _ := newTestNoteService(t)

	if _, err := svc.Add(context.Background(), uuid.New(), "   ", "body"); !errors.Is(err, entities.ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestNoteUpdatePartialPatch(t *testing.T) {
	svc, _ := newTestNoteService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, "title", "original content")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	newTitle := "renamed"
	updated, err := svc.Update(ctx, owner, created.ID, &newTitle, nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("Title = %q", updated.Title)
	}
	if updated.Content != "original content" {
		t.Errorf("nil content field should leave content untouched, got %q", updated.Content)
	}
}

func TestNoteUpdateUnknownNote(t *testing.T) {
	svc, _ := newTestNoteService(t)

	title := "x"
	_, err := svc.Update(context.Background(), uuid.New(), 99, &title, nil)
	if !errors.Is(err, entities.ErrNoteNotFound) {
		t.Errorf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteUpdateRevertsOnStoreFailure(t *testing.T) {
	svc, repo := newTestNoteService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, "title", "content")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := svc.Notes(owner)

	repo.fail = true
	newTitle := "changed"
	if _, err := svc.Update(ctx, owner, created.ID, &newTitle, nil); err == nil {
		t.Fatal("expected error from failed update")
	}

	after := svc.Notes(owner)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state not reverted: before=%v after=%v", before, after)
	}
}

func TestNoteDeleteRevertsOnStoreFailure(t *testing.T) {
	svc, repo := newTestNoteService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, "keep", "")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := svc.Notes(owner)

	repo.fail = true
	if err := svc.Delete(ctx, owner, created.ID); err == nil {
		t.Fatal("expected error from failed delete")
	}

	after := svc.Notes(owner)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state not reverted: before=%v after=%v", before, after)
	}
}

func TestNoteLoadFallsBackToCache(t *testing.T) {
	svc, repo := newTestNoteService(t)
	owner := uuid.New()
	ctx := context.Background()

	svc.Add(ctx, owner, "cached", "")
	if _, _, err := svc.Load(ctx, owner); err != nil {
		t.Fatalf("Load: %v", err)
	}

	repo.fail = true
	notes, degraded, err := svc.Load(ctx, owner)
	if !degraded || err == nil {
		t.Fatalf("expected degraded load with error, degraded=%v err=%v", degraded, err)
	}
	if len(notes) != 1 || notes[0].Title != "cached" {
		t.Errorf("expected cached notes, got %v", notes)
	}
}
