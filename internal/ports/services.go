package ports

import (
	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
)

// Claims is the validated projection of a JWT access token.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// RegisterRequest is the signup payload. FullName is optional; when present
// it must trim to at least 2 characters.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name,omitempty"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries a token pair plus the user projection.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	TokenType    string         `json:"token_type"`
	ExpiresIn    int64          `json:"expires_in"`
	User         *entities.User `json:"user"`
}

// AddItemRequest adds one item to a list-backed widget.
type AddItemRequest struct {
	Text string `json:"text" validate:"required"`
}

// CreateNoteRequest creates a note.
type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content"`
}

// UpdateNoteRequest edits a note; nil fields are left untouched.
type UpdateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ImportWidgetRequest imports an external widget by URL.
type ImportWidgetRequest struct {
	URL string `json:"url" validate:"required"`
}

// ToggleWidgetRequest soft-enables or soft-disables a widget.
type ToggleWidgetRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateSettingsRequest patches appearance preferences. Each field is
// independent; nil means "leave unchanged".
type UpdateSettingsRequest struct {
	Theme       *entities.Theme       `json:"theme"`
	FontFamily  *entities.FontFamily  `json:"font_family"`
	FontSize    *entities.FontSize    `json:"font_size"`
	AccentColor *entities.AccentColor `json:"accent_color"`
	LayoutWidth *entities.LayoutWidth `json:"layout_width"`
}

// UpdateProfileRequest edits the caller's profile.
type UpdateProfileRequest struct {
	FullName  *string `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	Bio       *string `json:"bio"`
}

// WidgetResponse wraps a widget with the iframe privilege grant the client
// applies when rendering it. Native widgets carry no sandbox.
type WidgetResponse struct {
	entities.Widget
	Sandbox string `json:"sandbox,omitempty"`
}

// NewWidgetResponse attaches the sandbox grant to embedded widgets.
func NewWidgetResponse(w entities.Widget) WidgetResponse {
	r := WidgetResponse{Widget: w}
	if w.Type == entities.WidgetTypeIframeEmbed {
		r.Sandbox = entities.SandboxAttributes
	}
	return r
}

// NewWidgetResponses maps a widget slice into renderable responses. The
// result is never nil so widget lists serialize as [] when empty.
func NewWidgetResponses(widgets []entities.Widget) []WidgetResponse {
	out := make([]WidgetResponse, 0, len(widgets))
	for _, w := range widgets {
		out = append(out, NewWidgetResponse(w))
	}
	return out
}

// DashboardResponse is the aggregate first-paint payload: every list kind,
// the notes and the enabled widgets, loaded concurrently.
type DashboardResponse struct {
	Tasks     []entities.ListItem `json:"tasks"`
	Habits    []entities.ListItem `json:"habits"`
	Schedules []entities.ListItem `json:"schedules"`
	Notes     []entities.Note     `json:"notes"`
	Widgets   []WidgetResponse    `json:"widgets"`
}
