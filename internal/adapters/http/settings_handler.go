package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/P-E-E-K-A/peeka/internal/application/services"
	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// SettingsHandler handles appearance preferences
type SettingsHandler struct {
	settingsService *services.SettingsService
	logger          *logger.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *services.SettingsService, logger *logger.Logger) *SettingsHandler {
	return &SettingsHandler{
		settingsService: settingsService,
		logger:          logger,
	}
}

// GetSettings returns the caller's appearance settings
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	owner := getUserIDFromContext(c)

	settings, err := h.settingsService.Get(c.Request().Context(), owner)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settings)
}

// UpdateSettings applies a partial patch to the caller's settings
func (h *SettingsHandler) UpdateSettings(c echo.Context) error {
	owner := getUserIDFromContext(c)

	var req ports.UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	settings, err := h.settingsService.Update(c.Request().Context(), owner, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settings)
}

// DashboardHandler serves the aggregate first-paint payload
type DashboardHandler struct {
	listService   *services.ListService
	noteService   *services.NoteService
	pluginService *services.PluginService
	logger        *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	listService *services.ListService,
	noteService *services.NoteService,
	pluginService *services.PluginService,
	logger *logger.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		listService:   listService,
		noteService:   noteService,
		pluginService: pluginService,
		logger:        logger,
	}
}

// GetDashboard loads every widget's data concurrently and returns one
// payload. Degraded list loads still contribute their cached items; only a
// load with no fallback fails the whole request.
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	owner := getUserIDFromContext(c)
	ctx := c.Request().Context()

	var resp ports.DashboardResponse

	g, gctx := errgroup.WithContext(ctx)

	loadList := func(kind entities.ListKind, dst *[]entities.ListItem) func() error {
		return func() error {
			items, degraded, err := h.listService.Load(gctx, owner, kind)
			if err != nil && !degraded {
				return err
			}
			*dst = items
			return nil
		}
	}

	g.Go(loadList(entities.ListKindTasks, &resp.Tasks))
	g.Go(loadList(entities.ListKindHabits, &resp.Habits))
	g.Go(loadList(entities.ListKindSchedules, &resp.Schedules))

	g.Go(func() error {
		notes, degraded, err := h.noteService.Load(gctx, owner)
		if err != nil && !degraded {
			return err
		}
		resp.Notes = notes
		return nil
	})

	g.Go(func() error {
		widgets, err := h.pluginService.LoadWidgets(gctx, owner)
		if err != nil {
			return err
		}
		resp.Widgets = ports.NewWidgetResponses(widgets)
		return nil
	})

	if err := g.Wait(); err != nil {
		h.logger.Errorw("Dashboard load failed", "owner_id", owner, "error", err)
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
