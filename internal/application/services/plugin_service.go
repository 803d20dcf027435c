package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// indifyLivePath extracts the widget type and external ID from an indify
// embed URL, e.g. /widgets/live/clock/abc123.
var indifyLivePath = regexp.MustCompile(`^/widgets/live/([^/]+)/(.+)$`)

// PluginService turns user-supplied URLs into persisted widget records and
// manages the installed set. Unlike the list controllers, mutations here are
// NOT optimistic: remove and toggle propagate store errors to the caller
// unchanged. The source system made the same split and it is kept on
// purpose; widgets are mutated rarely enough that strict error propagation
// costs little.
type PluginService struct {
	repo   ports.WidgetRepository
	logger *logger.Logger

	mu      sync.RWMutex
	widgets map[string]*entities.Widget
}

// NewPluginService creates a new plugin service
func NewPluginService(repo ports.WidgetRepository, logger *logger.Logger) *PluginService {
	return &PluginService{
		repo:    repo,
		logger:  logger,
		widgets: make(map[string]*entities.Widget),
	}
}

// ImportFromURL validates and classifies the URL, builds a widget record
// with provider-specific metadata and default size, persists it and
// registers it in memory.
func (s *PluginService) ImportFromURL(ctx context.Context, rawURL string, owner uuid.UUID) (*entities.Widget, error) {
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil || u.Host == "" {
		return nil, entities.ErrInvalidURL
	}

	if u.Scheme != "https" {
		return nil, entities.ErrInsecureURL
	}

	var widget *entities.Widget
	switch {
	case strings.Contains(u.Host, "indify.co"):
		widget = buildIndifyWidget(rawURL, u)
	case strings.Contains(u.Host, "widgetbox.app"):
		widget = buildWidgetBoxWidget(rawURL)
	default:
		widget = buildGenericWidget(rawURL)
	}

	widget.OwnerID = owner

	if err := s.repo.Insert(ctx, widget); err != nil {
		return nil, fmt.Errorf("failed to save widget: %w", err)
	}

	s.mu.Lock()
	s.widgets[widget.ID] = widget
	s.mu.Unlock()

	s.logger.Infow("Widget imported", "widget_id", widget.ID, "provider", widget.Metadata.Provider, "owner_id", owner)

	return widget, nil
}

// LoadWidgets returns all enabled widgets owned by the user and refreshes
// the in-memory registry.
func (s *PluginService) LoadWidgets(ctx context.Context, owner uuid.UUID) ([]entities.Widget, error) {
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	widgets, err := s.repo.ListEnabledByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load widgets: %w", err)
	}

	s.mu.Lock()
	for i := range widgets {
		w := widgets[i]
		s.widgets[w.ID] = &w
	}
	s.mu.Unlock()

	return widgets, nil
}

// RemoveWidget deletes the widget. Store errors propagate; nothing is
// reverted because nothing was changed optimistically.
func (s *PluginService) RemoveWidget(ctx context.Context, id string, owner uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, owner); err != nil {
		return fmt.Errorf("failed to remove widget: %w", err)
	}

	s.mu.Lock()
	delete(s.widgets, id)
	s.mu.Unlock()

	return nil
}

// ToggleWidget soft-enables or soft-disables the widget.
func (s *PluginService) ToggleWidget(ctx context.Context, id string, owner uuid.UUID, enabled bool) error {
	if err := s.repo.SetEnabled(ctx, id, owner, enabled); err != nil {
		return fmt.Errorf("failed to toggle widget: %w", err)
	}

	s.mu.Lock()
	if w, ok := s.widgets[id]; ok {
		w.Enabled = enabled
	}
	s.mu.Unlock()

	return nil
}

// Widget returns a registered widget by ID.
func (s *PluginService) Widget(id string) (*entities.Widget, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.widgets[id]
	return w, ok
}

// GetWidget returns a single widget owned by the caller. The in-memory
// registry answers first; a miss refreshes from the store before giving up.
func (s *PluginService) GetWidget(ctx context.Context, id string, owner uuid.UUID) (*entities.Widget, error) {
	if owner == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	if w, ok := s.Widget(id); ok && w.OwnerID == owner {
		return w, nil
	}

	widgets, err := s.LoadWidgets(ctx, owner)
	if err != nil {
		return nil, err
	}
	for i := range widgets {
		if widgets[i].ID == id {
			return &widgets[i], nil
		}
	}

	return nil, entities.ErrWidgetNotFound
}

func buildIndifyWidget(rawURL string, u *url.URL) *entities.Widget {
	widgetType := "unknown"
	externalID := generateWidgetID()
	if m := indifyLivePath.FindStringSubmatch(u.Path); m != nil {
		widgetType = m[1]
		externalID = m[2]
	}

	now := time.Now()
	return &entities.Widget{
		ID:     "indify-" + externalID,
		Name:   "Indify " + capitalize(widgetType),
		Type:   entities.WidgetTypeIframeEmbed,
		Source: entities.WidgetSourceIndify,
		URL:    &rawURL,
		Metadata: entities.WidgetMetadata{
			Provider:    "Indify",
			ProviderURL: "https://indify.co",
			WidgetType:  widgetType,
			ExternalID:  externalID,
			ImportedAt:  now,
		},
		Config: entities.WidgetConfig{
			Resizable:   true,
			DefaultSize: entities.WidgetSize{W: 2, H: 2},
		},
		Enabled:     true,
		InstalledAt: now,
	}
}

func buildWidgetBoxWidget(rawURL string) *entities.Widget {
	now := time.Now()
	return &entities.Widget{
		ID:     "widgetbox-" + generateWidgetID(),
		Name:   "WidgetBox Widget",
		Type:   entities.WidgetTypeIframeEmbed,
		Source: entities.WidgetSourceWidgetBox,
		URL:    &rawURL,
		Metadata: entities.WidgetMetadata{
			Provider:    "WidgetBox",
			ProviderURL: "https://widgetbox.app",
			ImportedAt:  now,
		},
		Config: entities.WidgetConfig{
			Resizable:   true,
			DefaultSize: entities.WidgetSize{W: 2, H: 2},
		},
		Enabled:     true,
		InstalledAt: now,
	}
}

func buildGenericWidget(rawURL string) *entities.Widget {
	now := time.Now()
	return &entities.Widget{
		ID:     "embed-" + generateWidgetID(),
		Name:   "External Widget",
		Type:   entities.WidgetTypeIframeEmbed,
		Source: entities.WidgetSourceGeneric,
		URL:    &rawURL,
		Metadata: entities.WidgetMetadata{
			Provider:   "External",
			ImportedAt: now,
		},
		Config: entities.WidgetConfig{
			Resizable:   true,
			DefaultSize: entities.WidgetSize{W: 3, H: 3},
		},
		Enabled:     true,
		InstalledAt: now,
	}
}

func generateWidgetID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
