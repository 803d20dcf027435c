package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// SettingsRepositoryImpl implements the SettingsRepository interface
type SettingsRepositoryImpl struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *sqlx.DB) ports.SettingsRepository {
	return &SettingsRepositoryImpl{db: db}
}

func (r *SettingsRepositoryImpl) Get(ctx context.Context, userID uuid.UUID) (*entities.AppearanceSettings, error) {
	query := `
		SELECT user_id, theme, font_family, font_size, accent_color, layout_width, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1`

	var settings entities.AppearanceSettings
	err := r.db.GetContext(ctx, &settings, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	return &settings, nil
}

func (r *SettingsRepositoryImpl) Upsert(ctx context.Context, settings *entities.AppearanceSettings) error {
	query := `
		INSERT INTO user_settings (user_id, theme, font_family, font_size, accent_color, layout_width)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			font_family = EXCLUDED.font_family,
			font_size = EXCLUDED.font_size,
			accent_color = EXCLUDED.accent_color,
			layout_width = EXCLUDED.layout_width,
			updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		settings.UserID, settings.Theme, settings.FontFamily, settings.FontSize,
		settings.AccentColor, settings.LayoutWidth,
	).Scan(&settings.CreatedAt, &settings.UpdatedAt)

	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return nil
}
