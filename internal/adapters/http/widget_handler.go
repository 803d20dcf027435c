package http

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/P-E-E-K-A/peeka/internal/application/services"
	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// WidgetHandler handles external widget import and management
type WidgetHandler struct {
	pluginService *services.PluginService
	logger        *logger.Logger
}

// NewWidgetHandler creates a new widget handler
func NewWidgetHandler(pluginService *services.PluginService, logger *logger.Logger) *WidgetHandler {
	return &WidgetHandler{
		pluginService: pluginService,
		logger:        logger,
	}
}

// ImportWidget imports an external widget from its embed URL
func (h *WidgetHandler) ImportWidget(c echo.Context) error {
	owner := getUserIDFromContext(c)

	var req ports.ImportWidgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	widget, err := h.pluginService.ImportFromURL(c.Request().Context(), req.URL, owner)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ports.NewWidgetResponse(*widget))
}

// ListWidgets returns the caller's enabled widgets
func (h *WidgetHandler) ListWidgets(c echo.Context) error {
	owner := getUserIDFromContext(c)

	widgets, err := h.pluginService.LoadWidgets(c.Request().Context(), owner)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.NewWidgetResponses(widgets))
}

// GetWidget returns one widget by ID
func (h *WidgetHandler) GetWidget(c echo.Context) error {
	owner := getUserIDFromContext(c)

	widget, err := h.pluginService.GetWidget(c.Request().Context(), c.Param("id"), owner)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ports.NewWidgetResponse(*widget))
}

// RemoveWidget deletes a widget
func (h *WidgetHandler) RemoveWidget(c echo.Context) error {
	owner := getUserIDFromContext(c)

	if err := h.pluginService.RemoveWidget(c.Request().Context(), c.Param("id"), owner); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// ToggleWidget soft-enables or soft-disables a widget
func (h *WidgetHandler) ToggleWidget(c echo.Context) error {
	owner := getUserIDFromContext(c)

	var req ports.ToggleWidgetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := h.pluginService.ToggleWidget(c.Request().Context(), c.Param("id"), owner, req.Enabled); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Widget toggled"})
}

// LayoutHandler handles dashboard layout persistence
type LayoutHandler struct {
	layoutService *services.LayoutService
	pluginService *services.PluginService
	logger        *logger.Logger
}

// NewLayoutHandler creates a new layout handler
func NewLayoutHandler(layoutService *services.LayoutService, pluginService *services.PluginService, logger *logger.Logger) *LayoutHandler {
	return &LayoutHandler{
		layoutService: layoutService,
		pluginService: pluginService,
		logger:        logger,
	}
}

// widgetIDs resolves the widget set the layout is computed for: either an
// explicit ?widgets=a,b,c list from the client or the caller's enabled
// widgets.
func (h *LayoutHandler) widgetIDs(c echo.Context) ([]string, error) {
	if raw := c.QueryParam("widgets"); raw != "" {
		return strings.Split(raw, ","), nil
	}

	owner := getUserIDFromContext(c)
	widgets, err := h.pluginService.LoadWidgets(c.Request().Context(), owner)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(widgets))
	for _, w := range widgets {
		ids = append(ids, w.ID)
	}
	return ids, nil
}

// GetLayouts returns the saved layout merged against current defaults
func (h *LayoutHandler) GetLayouts(c echo.Context) error {
	owner := getUserIDFromContext(c)

	ids, err := h.widgetIDs(c)
	if err != nil {
		return err
	}

	layouts, err := h.layoutService.LoadOrInit(c.Request().Context(), owner, ids)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, layouts)
}

// SaveLayouts replaces the saved layout wholesale
func (h *LayoutHandler) SaveLayouts(c echo.Context) error {
	owner := getUserIDFromContext(c)

	var layouts entities.Layouts
	if err := c.Bind(&layouts); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if !layouts.Valid() {
		return echo.NewHTTPError(http.StatusBadRequest, "Layout entries below minimum size")
	}

	if err := h.layoutService.Save(c.Request().Context(), owner, layouts); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, MessageResponse{Message: "Layout saved"})
}

// ResetLayouts discards the saved layout and returns fresh defaults
func (h *LayoutHandler) ResetLayouts(c echo.Context) error {
	owner := getUserIDFromContext(c)

	ids, err := h.widgetIDs(c)
	if err != nil {
		return err
	}

	layouts, err := h.layoutService.Reset(c.Request().Context(), owner, ids)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, layouts)
}
