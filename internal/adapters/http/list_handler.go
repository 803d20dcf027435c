package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/P-E-E-K-A/peeka/internal/application/services"
	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// ListHandler handles the three list-backed widgets (tasks, habits,
// schedules) behind one parameterized route.
type ListHandler struct {
	listService *services.ListService
	logger      *logger.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(listService *services.ListService, logger *logger.Logger) *ListHandler {
	return &ListHandler{
		listService: listService,
		logger:      logger,
	}
}

// ListItemsResponse carries a list payload plus sync status. Degraded means
// the remote store was unreachable and the items came from the local cache.
type ListItemsResponse struct {
	Items    []entities.ListItem `json:"items"`
	Degraded bool                `json:"degraded,omitempty"`
	Syncing  bool                `json:"syncing,omitempty"`
}

func listKindParam(c echo.Context) (entities.ListKind, error) {
	kind := entities.ListKind(c.Param("kind"))
	if !kind.IsValid() {
		return "", echo.NewHTTPError(http.StatusBadRequest, "Unknown list kind")
	}
	return kind, nil
}

func itemIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid item ID")
	}
	return id, nil
}

// GetItems loads the caller's list. A degraded load still returns 200 with
// cached items so the widget can render.
func (h *ListHandler) GetItems(c echo.Context) error {
	kind, err := listKindParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	items, degraded, err := h.listService.Load(c.Request().Context(), owner, kind)
	if err != nil && !degraded {
		return err
	}

	if items == nil {
		items = []entities.ListItem{}
	}

	return c.JSON(http.StatusOK, ListItemsResponse{
		Items:    items,
		Degraded: degraded,
		Syncing:  h.listService.Syncing(owner, kind),
	})
}

// AddItem adds one item to the list
func (h *ListHandler) AddItem(c echo.Context) error {
	kind, err := listKindParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	var req ports.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	item, err := h.listService.Add(c.Request().Context(), owner, kind, req.Text)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, item)
}

// ToggleItem flips an item's completed flag
func (h *ListHandler) ToggleItem(c echo.Context) error {
	kind, err := listKindParam(c)
	if err != nil {
		return err
	}
	id, err := itemIDParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	if err := h.listService.Toggle(c.Request().Context(), owner, kind, id); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Item toggled"})
}

// DeleteItem removes one item
func (h *ListHandler) DeleteItem(c echo.Context) error {
	kind, err := listKindParam(c)
	if err != nil {
		return err
	}
	id, err := itemIDParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	if err := h.listService.Delete(c.Request().Context(), owner, kind, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ClearCompleted removes every completed item in one batch
func (h *ListHandler) ClearCompleted(c echo.Context) error {
	kind, err := listKindParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	if err := h.listService.ClearCompleted(c.Request().Context(), owner, kind); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// NoteHandler handles the notes widget
type NoteHandler struct {
	noteService *services.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

// NotesResponse mirrors ListItemsResponse for notes.
type NotesResponse struct {
	Notes    []entities.Note `json:"notes"`
	Degraded bool            `json:"degraded,omitempty"`
}

// GetNotes loads the caller's notes
func (h *NoteHandler) GetNotes(c echo.Context) error {
	owner := getUserIDFromContext(c)

	notes, degraded, err := h.noteService.Load(c.Request().Context(), owner)
	if err != nil && !degraded {
		return err
	}

	if notes == nil {
		notes = []entities.Note{}
	}

	return c.JSON(http.StatusOK, NotesResponse{Notes: notes, Degraded: degraded})
}

// CreateNote creates a note
func (h *NoteHandler) CreateNote(c echo.Context) error {
	owner := getUserIDFromContext(c)

	var req ports.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.Add(c.Request().Context(), owner, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, note)
}

// UpdateNote edits a note's title and/or content
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	id, err := itemIDParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	var req ports.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	note, err := h.noteService.Update(c.Request().Context(), owner, id, req.Title, req.Content)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// DeleteNote removes a note
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	id, err := itemIDParam(c)
	if err != nil {
		return err
	}
	owner := getUserIDFromContext(c)

	if err := h.noteService.Delete(c.Request().Context(), owner, id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
