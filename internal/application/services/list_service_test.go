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

var errStoreDown = errors.New("store unreachable")

// memCache is an in-memory LocalCache with failure injection.
type memCache struct {
	data map[string][]byte
	fail bool
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string][]byte)}
}

func (c *memCache) cacheKey(ownerID uuid.UUID, key string) string {
	return ownerID.String() + "/" + key
}

func (c *memCache) Get(ctx context.Context, ownerID uuid.UUID, key string) ([]byte, error) {
	if c.fail {
		return nil, errStoreDown
	}
	blob, ok := c.data[c.cacheKey(ownerID, key)]
	if !ok {
		return nil, errors.New("not found")
	}
	return blob, nil
}

func (c *memCache) Set(ctx context.Context, ownerID uuid.UUID, key string, value []byte) error {
	if c.fail {
		return errStoreDown
	}
	c.data[c.cacheKey(ownerID, key)] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, ownerID uuid.UUID, key string) error {
	delete(c.data, c.cacheKey(ownerID, key))
	return nil
}

// fakeListRepo is an in-memory ListRepository with failure injection.
type fakeListRepo struct {
	items  map[entities.ListKind][]entities.ListItem
	nextID int64
	fail   bool
}

func newFakeListRepo() *fakeListRepo {
	return &fakeListRepo{items: make(map[entities.ListKind][]entities.ListItem), nextID: 1}
}

func (r *fakeListRepo) ListByOwner(ctx context.Context, kind entities.ListKind, ownerID uuid.UUID) ([]entities.ListItem, error) {
	if r.fail {
		return nil, errStoreDown
	}
	var out []entities.ListItem
	for _, it := range r.items[kind] {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *fakeListRepo) Insert(ctx context.Context, kind entities.ListKind, item *entities.ListItem) (*entities.ListItem, error) {
	if r.fail {
		return nil, errStoreDown
	}
	created := *item
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.nextID++
	r.items[kind] = append(r.items[kind], created)
	return &created, nil
}

func (r *fakeListRepo) SetCompleted(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID, completed bool, updatedAt time.Time) error {
	if r.fail {
		return errStoreDown
	}
	for i := range r.items[kind] {
		if r.items[kind][i].ID == id && r.items[kind][i].OwnerID == ownerID {
			r.items[kind][i].Completed = completed
			r.items[kind][i].UpdatedAt = updatedAt
			return nil
		}
	}
	return entities.ErrItemNotFound
}

func (r *fakeListRepo) Delete(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID) error {
	if r.fail {
		return errStoreDown
	}
	kept := r.items[kind][:0]
	found := false
	for _, it := range r.items[kind] {
		if it.ID == id && it.OwnerID == ownerID {
			found = true
			continue
		}
		kept = append(kept, it)
	}
	r.items[kind] = kept
	if !found {
		return entities.ErrItemNotFound
	}
	return nil
}

func (r *fakeListRepo) DeleteMany(ctx context.Context, kind entities.ListKind, ids []int64, ownerID uuid.UUID) error {
	if r.fail {
		return errStoreDown
	}
	for _, id := range ids {
		r.Delete(ctx, kind, id, ownerID)
	}
	return nil
}

func newTestListService(t *testing.T) (*ListService, *fakeListRepo, *memCache) {
	t.Helper()
	repo := newFakeListRepo()
	c := newMemCache()
	return NewListService(repo, c, logger.NewNop()), repo, c
}

func TestAddReplacesTemporaryID(t *testing.T) {
	svc, _, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, entities.ListKindTasks, "write tests")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected store-assigned ID 1, got %d", created.ID)
	}

	items := svc.Items(owner, entities.ListKindTasks)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].ID != created.ID {
		t.Errorf("temporary ID not replaced: %d", items[0].ID)
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	svc, _, _ := newTestListService(t)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Add(context.Background(), uuid.New(), entities.ListKindTasks, text); !errors.Is(err, entities.ErrEmptyText) {
			t.Errorf("Add(%q): expected ErrEmptyText, got %v", text, err)
		}
	}
}

func TestAddRequiresOwner(t *testing.T) {
	svc, _, _ := newTestListService(t)

	if _, err := svc.Add(context.Background(), uuid.Nil, entities.ListKindTasks, "hello"); !errors.Is(err, entities.ErrNoOwner) {
		t.Errorf("expected ErrNoOwner, got %v", err)
	}
}

func TestAddRevertsOnStoreFailure(t *testing.T) {
	svc, repo, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	if _, err := svc.Add(ctx, owner, entities.ListKindTasks, "keep me"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := svc.Items(owner, entities.ListKindTasks)

	repo.fail = true
	_, err := svc.Add(ctx, owner, entities.ListKindTasks, "rejected")
	if err == nil {
		t.Fatal("expected error from failed add")
	}

	after := svc.Items(owner, entities.ListKindTasks)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state not reverted: before=%v after=%v", before, after)
	}
}

func TestDoubleToggleRoundTrips(t *testing.T) {
	svc, _, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, entities.ListKindHabits, "meditate")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Toggle(ctx, owner, entities.ListKindHabits, created.ID); err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if err := svc.Toggle(ctx, owner, entities.ListKindHabits, created.ID); err != nil {
		t.Fatalf("second toggle: %v", err)
	}

	items := svc.Items(owner, entities.ListKindHabits)
	if items[0].Completed {
		t.Error("double toggle should restore completed=false")
	}
}

func TestToggleUnknownItem(t *testing.T) {
	svc, _, _ := newTestListService(t)

	err := svc.Toggle(context.Background(), uuid.New(), entities.ListKindTasks, 42)
	if !errors.Is(err, entities.ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestToggleRevertsOnStoreFailure(t *testing.T) {
	svc, repo, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, entities.ListKindTasks, "task")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := svc.Items(owner, entities.ListKindTasks)

	repo.fail = true
	if err := svc.Toggle(ctx, owner, entities.ListKindTasks, created.ID); err == nil {
		t.Fatal("expected error from failed toggle")
	}

	after := svc.Items(owner, entities.ListKindTasks)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state not reverted: before=%v after=%v", before, after)
	}
}

func TestDeleteRevertsOnStoreFailure(t *testing.T) {
	svc, repo, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	created, err := svc.Add(ctx, owner, entities.ListKindSchedules, "meeting")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	before := svc.Items(owner, entities.ListKindSchedules)

	repo.fail = true
	if err := svc.Delete(ctx, owner, entities.ListKindSchedules, created.ID); err == nil {
		t.Fatal("expected error from failed delete")
	}

	after := svc.Items(owner, entities.ListKindSchedules)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state not reverted: before=%v after=%v", before, after)
	}
}

func TestClearCompleted(t *testing.T) {
	svc, _, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	done, _ := svc.Add(ctx, owner, entities.ListKindTasks, "done")
	svc.Add(ctx, owner, entities.ListKindTasks, "pending")
	if err := svc.Toggle(ctx, owner, entities.ListKindTasks, done.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if err := svc.ClearCompleted(ctx, owner, entities.ListKindTasks); err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}

	items := svc.Items(owner, entities.ListKindTasks)
	if len(items) != 1 || items[0].Text != "pending" {
		t.Errorf("expected only pending item, got %v", items)
	}
}

func TestClearCompletedNoopWhenNothingDone(t *testing.T) {
	svc, repo, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	svc.Add(ctx, owner, entities.ListKindTasks, "pending")

	// Even a broken store should not matter: no batch delete is issued.
	repo.fail = true
	if err := svc.ClearCompleted(ctx, owner, entities.ListKindTasks); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}

func TestLoadFallsBackToCache(t *testing.T) {
	svc, repo, _ := newTestListService(t)
	owner := uuid.New()
	ctx := context.Background()

	svc.Add(ctx, owner, entities.ListKindTasks, "cached item")
	if _, _, err := svc.Load(ctx, owner, entities.ListKindTasks); err != nil {
		t.Fatalf("Load: %v", err)
	}

	repo.fail = true
	items, degraded, err := svc.Load(ctx, owner, entities.ListKindTasks)
	if !degraded {
		t.Fatal("expected degraded load")
	}
	if err == nil {
		t.Fatal("degraded load should still surface the store error")
	}
	if len(items) != 1 || items[0].Text != "cached item" {
		t.Errorf("expected cached items, got %v", items)
	}
}

func TestLoadFailsWithoutCache(t *testing.T) {
	svc, repo, _ := newTestListService(t)
	repo.fail = true

	_, degraded, err := svc.Load(context.Background(), uuid.New(), entities.ListKindTasks)
	if err == nil {
		t.Fatal("expected error")
	}
	if degraded {
		t.Error("no cache entry, load should not report degraded")
	}
}

func TestLoadRejectsUnknownKind(t *testing.T) {
	svc, _, _ := newTestListService(t)

	_, _, err := svc.Load(context.Background(), uuid.New(), entities.ListKind("groceries"))
	if !errors.Is(err, entities.ErrUnknownListKind) {
		t.Errorf("expected ErrUnknownListKind, got %v", err)
	}
}

func TestListsAreIsolatedPerOwner(t *testing.T) {
	svc, _, _ := newTestListService(t)
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	svc.Add(ctx, alice, entities.ListKindTasks, "alice task")
	svc.Add(ctx, bob, entities.ListKindTasks, "bob task")

	items, _, err := svc.Load(ctx, alice, entities.ListKindTasks)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 1 || items[0].Text != "alice task" {
		t.Errorf("owner isolation broken: %v", items)
	}
}

func TestCacheFailureDoesNotFailMutation(t *testing.T) {
	svc, _, c := newTestListService(t)
	owner := uuid.New()

	c.fail = true
	if _, err := svc.Add(context.Background(), owner, entities.ListKindTasks, "still works"); err != nil {
		t.Errorf("mirror failure should not fail the add: %v", err)
	}
}
