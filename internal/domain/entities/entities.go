package entities

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrItemNotFound     = errors.New("list item not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrWidgetNotFound   = errors.New("widget not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSettingsNotFound = errors.New("settings not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrEmptyText        = errors.New("text must not be empty")
	ErrNoOwner          = errors.New("owner is not known")
	ErrInvalidURL       = errors.New("invalid URL format")
	ErrInsecureURL      = errors.New("only HTTPS URLs are allowed")
	ErrUnknownListKind  = errors.New("unknown list kind")
	ErrInvalidSetting   = errors.New("invalid setting value")
)

// ListKind identifies one of the list-backed widgets. Each kind maps to its
// own table and local cache key.
type ListKind string

const (
	ListKindTasks     ListKind = "tasks"
	ListKindHabits    ListKind = "habits"
	ListKindSchedules ListKind = "schedules"
)

func (k ListKind) IsValid() bool {
	switch k {
	case ListKindTasks, ListKindHabits, ListKindSchedules:
		return true
	default:
		return false
	}
}

// Table returns the backing table name for the kind.
func (k ListKind) Table() string {
	return string(k)
}

// ListItem is the shared row shape of the task, habit and schedule widgets.
// IDs are assigned by the store on insert; a client-visible temporary ID
// derived from the current time stands in until the insert is acknowledged.
type ListItem struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Completed bool      `json:"completed" db:"completed"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// Note is a free-form note owned by one user. The expanded/editing state the
// UI keeps per note is not persisted and does not appear here.
type Note struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	OwnerID   uuid.UUID `json:"owner_id" db:"owner_id"`
	CreatedAt time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// User represents an account in the system.
type User struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     *string    `json:"full_name" db:"full_name"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at" db:"last_login_at"`
}

// Profile holds the public-facing details of a user. Created best-effort at
// signup when a full name is supplied.
type Profile struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	Bio       *string   `json:"bio" db:"bio"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// RefreshToken is a stored, hashed refresh token.
type RefreshToken struct {
	ID        int64      `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	TokenHash string     `json:"-" db:"token_hash"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at" db:"revoked_at"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// ValidateSignUp checks signup input before any store call is made.
func ValidateSignUp(email, password, fullName string) error {
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	if len(password) < 6 {
		return errors.New("password must be at least 6 characters")
	}
	if fullName != "" && len(strings.TrimSpace(fullName)) < 2 {
		return errors.New("full name must be at least 2 characters")
	}
	return nil
}
