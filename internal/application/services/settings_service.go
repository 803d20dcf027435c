package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/infrastructure/logger"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

const settingsCacheKey = "appearance"

// SettingsService manages appearance preferences. Reads prefer the remote
// store and fall back to the cached mirror, then to hardcoded defaults, so a
// settings fetch never fails the page. Writes patch individual fields and
// refresh the mirror.
type SettingsService struct {
	repo   ports.SettingsRepository
	cache  ports.LocalCache
	logger *logger.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(repo ports.SettingsRepository, cache ports.LocalCache, logger *logger.Logger) *SettingsService {
	return &SettingsService{repo: repo, cache: cache, logger: logger}
}

// Get returns the user's appearance settings. A user with no saved row gets
// the defaults. A store failure falls back to the cache, then to defaults.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*entities.AppearanceSettings, error) {
	if userID == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	settings, err := s.repo.Get(ctx, userID)
	if err == nil {
		if mErr := s.mirror(ctx, settings); mErr != nil {
			s.logger.Warnw("Failed to mirror settings to cache", "error", mErr)
		}
		return settings, nil
	}

	if errors.Is(err, entities.ErrSettingsNotFound) {
		defaults := entities.DefaultAppearance(userID)
		return &defaults, nil
	}

	s.logger.Errorw("Failed to load settings", "user_id", userID, "error", err)

	if blob, cErr := s.cache.Get(ctx, userID, settingsCacheKey); cErr == nil {
		var cached entities.AppearanceSettings
		if jErr := json.Unmarshal(blob, &cached); jErr == nil {
			return &cached, nil
		}
	}

	defaults := entities.DefaultAppearance(userID)
	return &defaults, nil
}

// Update applies a partial patch. Nil fields stay untouched; set fields are
// validated against their enum before anything is written.
func (s *SettingsService) Update(ctx context.Context, userID uuid.UUID, req ports.UpdateSettingsRequest) (*entities.AppearanceSettings, error) {
	if userID == uuid.Nil {
		return nil, entities.ErrNoOwner
	}

	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Theme != nil {
		current.Theme = *req.Theme
	}
	if req.FontFamily != nil {
		current.FontFamily = *req.FontFamily
	}
	if req.FontSize != nil {
		current.FontSize = *req.FontSize
	}
	if req.AccentColor != nil {
		current.AccentColor = *req.AccentColor
	}
	if req.LayoutWidth != nil {
		current.LayoutWidth = *req.LayoutWidth
	}

	if err := current.Validate(); err != nil {
		return nil, err
	}

	current.UserID = userID
	current.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, current); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}

	if mErr := s.mirror(ctx, current); mErr != nil {
		s.logger.Warnw("Failed to mirror settings to cache", "error", mErr)
	}

	s.logger.Infow("Settings updated", "user_id", userID)
	return current, nil
}

func (s *SettingsService) mirror(ctx context.Context, settings *entities.AppearanceSettings) error {
	blob, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return s.cache.Set(ctx, settings.UserID, settingsCacheKey, blob)
}
