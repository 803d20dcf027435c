package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/P-E-E-K-A/peeka/internal/domain/entities"
	"github.com/P-E-E-K-A/peeka/internal/ports"
)

// ListRepositoryImpl implements ports.ListRepository over the tasks, habits
// and schedules tables. The three widgets share one row shape, so a single
// repository serves all of them, parameterized by kind.
type ListRepositoryImpl struct {
	db *sqlx.DB
}

// NewListRepository creates a new list repository
func NewListRepository(db *sqlx.DB) ports.ListRepository {
	return &ListRepositoryImpl{db: db}
}

// table resolves the kind to its table name. Kind is a closed enum, so the
// name is safe to splice into query text.
func table(kind entities.ListKind) (string, error) {
	if !kind.IsValid() {
		return "", entities.ErrUnknownListKind
	}
	return kind.Table(), nil
}

func (r *ListRepositoryImpl) ListByOwner(ctx context.Context, kind entities.ListKind, ownerID uuid.UUID) ([]entities.ListItem, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		SELECT id, text, completed, owner_id, created_at, updated_at
		FROM %s
		WHERE owner_id = $1
		ORDER BY created_at, id`, tbl)

	items := []entities.ListItem{}
	if err := r.db.SelectContext(ctx, &items, query, ownerID); err != nil {
		return nil, fmt.Errorf("list %s: %w", tbl, err)
	}

	return items, nil
}

func (r *ListRepositoryImpl) Insert(ctx context.Context, kind entities.ListKind, item *entities.ListItem) (*entities.ListItem, error) {
	tbl, err := table(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (text, completed, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, text, completed, owner_id, created_at, updated_at`, tbl)

	var created entities.ListItem
	err = r.db.GetContext(ctx, &created, query, item.Text, item.Completed, item.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", tbl, err)
	}

	return &created, nil
}

func (r *ListRepositoryImpl) SetCompleted(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID, completed bool, updatedAt time.Time) error {
	tbl, err := table(kind)
	if err != nil {
		return err
	}

	// owner_id in the predicate guards against cross-user mutation.
	query := fmt.Sprintf(`
		UPDATE %s SET completed = $3, updated_at = $4
		WHERE id = $1 AND owner_id = $2`, tbl)

	result, err := r.db.ExecContext(ctx, query, id, ownerID, completed, updatedAt)
	if err != nil {
		return fmt.Errorf("update %s: %w", tbl, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrItemNotFound
	}

	return nil
}

func (r *ListRepositoryImpl) Delete(ctx context.Context, kind entities.ListKind, id int64, ownerID uuid.UUID) error {
	tbl, err := table(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND owner_id = $2`, tbl)

	result, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", tbl, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entities.ErrItemNotFound
	}

	return nil
}

func (r *ListRepositoryImpl) DeleteMany(ctx context.Context, kind entities.ListKind, ids []int64, ownerID uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	tbl, err := table(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ANY($1) AND owner_id = $2`, tbl)

	if _, err := r.db.ExecContext(ctx, query, pq.Array(ids), ownerID); err != nil {
		return fmt.Errorf("batch delete from %s: %w", tbl, err)
	}

	return nil
}
