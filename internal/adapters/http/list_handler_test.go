package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/P-E-E-K-A/peeka/internal/application/services"
	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
)

type stubListRepo struct {
	items  map[entities.ListKind][]entities.ListItem
	nextID int64
}

func newStubListRepo() *stubListRepo {
	return &stubListRepo{items: make(map[entities.ListKind][]entities.ListItem), nextID: 1}
}

func (r *stubListRepo) ListByOwner(ctx context.Context, kind entities.ListKind, ownerID uuid.UUID) ([]entities.ListItem, error) {
	var out []entities.ListItem
	for _, it := range r.items[kind] {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *stubListRepo) Insert(ctx context.Context, kind entities.ListKind, item *entities.ListItem) (*entities.ListItem, error) {
	created := *item
	created.ID = r.nextID
	r.nextID++
	r.items[kind] = append(r.items[kind], created)
	return &created, nil
}

func (r *stubListRepo) SetCompleted(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID, completed bool, updatedAt time.Time) error {
	for i := range r.items[kind] {
		if r.items[kind][i].ID == id {
			r.items[kind][i].Completed = completed
			return nil
		}
	}
	return entities.ErrItemNotFound
}

func (r *stubListRepo) Delete(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID) error {
	return nil
}

func (r *stubListRepo) DeleteMany(ctx context.Context, kind entities.ListKind, ids []int64, ownerID uuid.UUID) error {
	return nil
}

type stubCache struct{}

func (stubCache) Get(ctx context.Context, ownerID uuid.UUID, key string) ([]byte, error) {
	return nil, errors.New("not found")
}
func (stubCache) Set(ctx context.Context, ownerID uuid.UUID, key string, value []byte) error {
	return nil
}
func (stubCache) Delete(ctx context.Context, ownerID uuid.UUID, key string) error { return nil }

func newListTestContext(t *testing.T, method, body string, owner uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if owner != uuid.Nil {
		c.Set("user", owner.String())
	}
	return c, rec
}

func newTestListHandler(t *testing.T) *ListHandler {
	t.Helper()
	svc := services.NewListService(newStubListRepo(), stubCache{}, logger.NewNop())
	return NewListHandler(svc, logger.NewNop())
}

func TestGetItemsRejectsUnknownKind(t *testing.T) {
	h := newTestListHandler(t)
	c, _ := newListTestContext(t, http.MethodGet, "", uuid.New())
	c.SetParamNames("kind")
	c.SetParamValues("groceries")

	err := h.GetItems(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestAddItemCreated(t *testing.T) {
	h := newTestListHandler(t)
	owner := uuid.New()
	c, rec := newListTestContext(t, http.MethodPost, `{"text":"buy milk"}`, owner)
	c.SetParamNames("kind")
	c.SetParamValues("tasks")

	if err := h.AddItem(c); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d", rec.Code)
	}

	var created entities.ListItem
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.Text != "buy milk" || created.ID == 0 {
		t.Errorf("created = %+v", created)
	}
}

func TestAddItemEmptyTextPropagatesSentinel(t *testing.T) {
	h := newTestListHandler(t)
	c, _ := newListTestContext(t, http.MethodPost, `{"text":"  "}`, uuid.New())
	c.SetParamNames("kind")
	c.SetParamValues("tasks")

	err := h.AddItem(c)
	if !errors.Is(err, entities.ErrEmptyText) {
		t.Errorf("expected ErrEmptyText, got %v", err)
	}
}

func TestAddItemWithoutUserFailsAsNoOwner(t *testing.T) {
	h := newTestListHandler(t)
	c, _ := newListTestContext(t, http.MethodPost, `{"text":"x"}`, uuid.Nil)
	c.SetParamNames("kind")
	c.SetParamValues("tasks")

	err := h.AddItem(c)
	if !errors.Is(err, entities.ErrNoOwner) {
		t.Errorf("expected ErrNoOwner, got %v", err)
	}
}

func TestToggleItemBadID(t *testing.T) {
	h := newTestListHandler(t)
	c, _ := newListTestContext(t, http.MethodPost, "", uuid.New())
	c.SetParamNames("kind", "id")
	c.SetParamValues("tasks", "not-a-number")

	err := h.ToggleItem(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestGetItemsReturnsEmptyListNotNull(t *testing.T) {
	h := newTestListHandler(t)
	c, rec := newListTestContext(t, http.MethodGet, "", uuid.New())
	c.SetParamNames("kind")
	c.SetParamValues("habits")

	if err := h.GetItems(c); err != nil {
		t.Fatalf("GetItems: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), `"items":null`) {
		t.Errorf("items should be an empty array: %s", rec.Body.String())
	}
}
