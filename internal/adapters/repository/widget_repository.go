package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// WidgetRepositoryImpl implements the WidgetRepository interface
type WidgetRepositoryImpl struct {
	db *sqlx.DB
}

// NewWidgetRepository creates a new widget repository
func NewWidgetRepository(db *sqlx.DB) ports.WidgetRepository {
	return &WidgetRepositoryImpl{db: db}
}

func (r *WidgetRepositoryImpl) Insert(ctx context.Context, widget *entities.Widget) error {
	query := `
		INSERT INTO widgets (id, owner_id, name, type, source, url, metadata, config, enabled, installed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		widget.ID, widget.OwnerID, widget.Name, widget.Type, widget.Source,
		widget.URL, widget.Metadata, widget.Config, widget.Enabled, widget.InstalledAt,
	)
	if err != nil {
		return fmt.Errorf("insert widget: %w", err)
	}

	return nil
}

func (r *WidgetRepositoryImpl) ListEnabledByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Widget, error) {
	query := `
		SELECT id, owner_id, name, type, source, url, metadata, config, enabled, installed_at
		FROM widgets
		WHERE owner_id = $1 AND enabled = TRUE
		ORDER BY installed_at, id`

	widgets := []entities.Widget{}
	if err := r.db.SelectContext(ctx, &widgets, query, ownerID); err != nil {
		return nil, fmt.Errorf("list widgets: %w", err)
	}

	return widgets, nil
}

func (r *WidgetRepositoryImpl) Delete(ctx context.Context, id string, ownerID uuid.UUID) error {
	query := `DELETE FROM widgets WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete widget: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrWidgetNotFound
	}

	return nil
}

func (r *WidgetRepositoryImpl) SetEnabled(ctx context.Context, id string, ownerID uuid.UUID, enabled bool) error {
	query := `UPDATE widgets SET enabled = $3 WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID, enabled)
	if err != nil {
		return fmt.Errorf("toggle widget: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrWidgetNotFound
	}

	return nil
}
