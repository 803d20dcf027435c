package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
)

// ListRepository is the remote-store access for one list kind
// (tasks, habits or schedules). Every operation is owner-scoped.
type ListRepository interface {
	ListByOwner(ctx context.Context, kind entities.ListKind, ownerID uuid.UUID) ([]entities.ListItem, error)
	Insert(ctx context.Context, kind entities.ListKind, item *entities.ListItem) (*entities.ListItem, error)
	SetCompleted(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID, completed bool, updatedAt time.Time) error
	Delete(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID) error
	DeleteMany(ctx context.Context, kind entities.ListKind, ids []int64, ownerID uuid.UUID) error
}

// NoteRepository persists notes.
type NoteRepository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Note, error)
	Insert(ctx context.Context, note *entities.Note) (*entities.Note, error)
	Update(ctx context.Context, note *entities.Note) error
	Delete(ctx context.Context, id int64, ownerID uuid.UUID) error
}

// WidgetRepository persists imported widgets.
type WidgetRepository interface {
	Insert(ctx context.Context, widget *entities.Widget) error
	ListEnabledByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Widget, error)
	Delete(ctx context.Context, id string, ownerID uuid.UUID) error
	SetEnabled(ctx context.Context, id string, ownerID uuid.UUID, enabled bool) error
}

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Profile, error)
	Update(ctx context.Context, profile *entities.Profile) error
}

// SettingsRepository persists appearance settings.
type SettingsRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*entities.AppearanceSettings, error)
	Upsert(ctx context.Context, settings *entities.AppearanceSettings) error
}

// AuthRepository persists hashed refresh tokens.
type AuthRepository interface {
	CreateRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*entities.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error
}

// LocalCache is the on-host key-value mirror used as a degraded fallback for
// list loads and as layout/settings storage. Keys are namespaced per owner;
// last writer wins.
type LocalCache interface {
	Get(ctx context.Context, ownerID uuid.UUID, key string) ([]byte, error)
	Set(ctx context.Context, ownerID uuid.UUID, key string, value []byte) error
	Delete(ctx context.Context, ownerID uuid.UUID, key string) error
}
