/*
Package sqlite provides a SQLite-backed policy.Medium.

PURPOSE:
  Persists key-value slots (the saved policy collection is one slot) in a
  single SQLite table. Each Write replaces the whole slot value.

KEY TABLES:
  slots: key TEXT PRIMARY KEY, value TEXT, updated_at TEXT

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's own locking.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so readers don't block
  the single writer.

USAGE:
  medium, err := sqlite.New("./data/policies.db")
  if err != nil {
      log.Fatal(err)
  }
  defer medium.Close()

  store := policy.NewStore(medium, policy.DefaultSlotKey, logger)

SEE ALSO:
  - policy/medium.go: Medium interface and in-memory implementation
  - store/mysql:      MySQL implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/leave-rules/policy"
)

// Store implements policy.Medium using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ policy.Medium = (*Store)(nil)

// New opens (and migrates) a SQLite database at dbPath.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	const op = "store.sqlite.New"

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open database: %w", op, err)
	}
	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to migrate database: %w", op, err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SLOTS (policy.Medium)
// =============================================================================

// Read returns the slot value, or nil if the slot was never written.
func (s *Store) Read(ctx context.Context, key string) ([]byte, error) {
	const op = "store.sqlite.Read"

	s.mu.RLock()
	defer s.mu.RUnlock()

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return []byte(value), nil
}

// Write replaces the slot value.
func (s *Store) Write(ctx context.Context, key string, value []byte) error {
	const op = "store.sqlite.Write"

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`
	_, err := s.db.ExecContext(ctx, query, key, string(value), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatedAt returns when the slot was last written. ok is false when the
// slot doesn't exist.
func (s *Store) UpdatedAt(ctx context.Context, key string) (t time.Time, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err = s.db.QueryRowContext(ctx, "SELECT updated_at FROM slots WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("store.sqlite.UpdatedAt: slot %q: %w", key, err)
	}
	return t, true, nil
}

// Reset clears all slots (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM slots")
	return err
}
