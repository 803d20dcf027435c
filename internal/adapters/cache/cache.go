// Package cache is the on-host counterpart of the browser's localStorage: a
// small embedded key-value store holding last-known-good list mirrors,
// dashboard layouts and appearance settings. It is a degraded fallback, never
// the source of truth. Keys are namespaced per owner so a cached copy can
// never leak between accounts.
package cache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed key-value store. Writes are last-writer-wins;
// there is no locking beyond the driver's.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	owner_id TEXT NOT NULL,
	key      TEXT NOT NULL,
	value    BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (owner_id, key)
);`

// Open opens (and initializes) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached value, or sql.ErrNoRows when the key is absent.
func (s *Store) Get(ctx context.Context, ownerID uuid.UUID, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE owner_id = ? AND key = ?`,
		ownerID.String(), key,
	).Scan(&value)
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Set stores or replaces the value for the owner-scoped key.
func (s *Store) Set(ctx context.Context, ownerID uuid.UUID, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv (owner_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (owner_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		ownerID.String(), key, value,
	)
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (s *Store) Delete(ctx context.Context, ownerID uuid.UUID, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE owner_id = ? AND key = ?`,
		ownerID.String(), key,
	)
	if err != nil {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
