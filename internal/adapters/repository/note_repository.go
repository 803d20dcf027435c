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

// NoteRepositoryImpl implements the NoteRepository interface
type NoteRepositoryImpl struct {
	db *sqlx.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sqlx.DB) ports.NoteRepository {
	return &NoteRepositoryImpl{db: db}
}

func (r *NoteRepositoryImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entities.Note, error) {
	query := `
		SELECT id, title, content, owner_id, created_at, updated_at
		FROM notes
		WHERE owner_id = $1
		ORDER BY created_at, id`

	notes := []entities.Note{}
	if err := r.db.SelectContext(ctx, &notes, query, ownerID); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return notes, nil
}

func (r *NoteRepositoryImpl) Insert(ctx context.Context, note *entities.Note) (*entities.Note, error) {
	query := `
		INSERT INTO notes (title, content, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, title, content, owner_id, created_at, updated_at`

	var created entities.Note
	err := r.db.GetContext(ctx, &created, query, note.Title, note.Content, note.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return &created, nil
}

func (r *NoteRepositoryImpl) Update(ctx context.Context, note *entities.Note) error {
	query := `
		UPDATE notes SET title = $3, content = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND owner_id = $2
		RETURNING updated_at`

	err := r.db.QueryRowContext(ctx, query, note.ID, note.OwnerID, note.Title, note.Content).
		Scan(&note.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrNoteNotFound
		}
		return fmt.Errorf("update note: %w", err)
	}

	return nil
}

func (r *NoteRepositoryImpl) Delete(ctx context.Context, id int64, ownerID uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1 AND owner_id = $2`

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrNoteNotFound
	}

	return nil
}
