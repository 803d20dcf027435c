package entities

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Widget source and type enums
type WidgetType string

const (
	WidgetTypeIframeEmbed WidgetType = "iframe-embed"
	WidgetTypeNative      WidgetType = "native"
)

type WidgetSource string

const (
	WidgetSourceIndify    WidgetSource = "indify"
	WidgetSourceWidgetBox WidgetSource = "widgetbox"
	WidgetSourceGeneric   WidgetSource = "generic"
	WidgetSourceNative    WidgetSource = "native"
)

// SandboxAttributes is the full privilege set granted to imported widget
// iframes. Nothing beyond these flags is ever granted.
const SandboxAttributes = "allow-scripts allow-same-origin allow-forms allow-popups"

// WidgetMetadata describes where an imported widget came from.
type WidgetMetadata struct {
	Provider    string    `json:"provider"`
	ProviderURL string    `json:"provider_url,omitempty"`
	WidgetType  string    `json:"widget_type,omitempty"`
	ExternalID  string    `json:"external_id,omitempty"`
	ImportedAt  time.Time `json:"imported_at"`
}

// WidgetSize is a grid size in layout units.
type WidgetSize struct {
	W int `json:"w"`
	H int `json:"h"`
}

// WidgetConfig holds display configuration for a widget.
type WidgetConfig struct {
	Resizable   bool        `json:"resizable"`
	DefaultSize WidgetSize  `json:"default_size"`
	Position    *WidgetSize `json:"position,omitempty"`
}

// Widget is an installed dashboard widget, either native or imported from an
// external provider URL. Imported widgets carry a provider-prefixed ID
// (indify-<id>, widgetbox-<id>, embed-<id>) and are soft-disabled rather
// than deleted by the enable toggle.
type Widget struct {
	ID          string         `json:"id" db:"id"`
	OwnerID     uuid.UUID      `json:"owner_id" db:"owner_id"`
	Name        string         `json:"name" db:"name"`
	Type        WidgetType     `json:"type" db:"type"`
	Source      WidgetSource   `json:"source" db:"source"`
	URL         *string        `json:"url,omitempty" db:"url"`
	Metadata    WidgetMetadata `json:"metadata" db:"metadata"`
	Config      WidgetConfig   `json:"config" db:"config"`
	Enabled     bool           `json:"enabled" db:"enabled"`
	InstalledAt time.Time      `json:"installed_at" db:"installed_at"`
}

// Value implements driver.Valuer so metadata can live in a JSONB column.
func (m WidgetMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *WidgetMetadata) Scan(src interface{}) error {
	return scanJSON(src, m)
}

func (c WidgetConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *WidgetConfig) Scan(src interface{}) error {
	return scanJSON(src, c)
}

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan %T into JSON value", src)
	}
}
