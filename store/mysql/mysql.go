// Package mysql provides a MySQL-backed policy.Medium for deployments that
// keep saved policies in a shared database instead of a local SQLite file.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/warp/leave-rules/policy"
)

const schema = `
	CREATE TABLE IF NOT EXISTS slots (
		slot_key   VARCHAR(191) NOT NULL PRIMARY KEY,
		value      LONGTEXT     NOT NULL,
		updated_at DATETIME     NOT NULL
	)`

// Storage implements policy.Medium using MySQL.
type Storage struct {
	db *sql.DB
}

var _ policy.Medium = (*Storage)(nil)

// New connects to dsn and creates the slots table if needed.
func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "store.mysql.New"

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid dsn: %w", op, err)
	}
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db := sql.OpenDB(connector)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: ping failed: %w", op, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: failed to migrate: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// NewWithDB wraps an existing connection pool. The slots table must exist.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{db: db}
}

// Close closes the connection pool.
func (s *Storage) Close() error {
	return s.db.Close()
}

// Read returns the slot value, or nil if the slot was never written.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	const op = "store.mysql.Read"

	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM slots WHERE slot_key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return []byte(value), nil
}

// Write replaces the slot value.
func (s *Storage) Write(ctx context.Context, key string, value []byte) error {
	const op = "store.mysql.Write"

	stmt := `
		INSERT INTO slots (slot_key, value, updated_at)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE value = VALUES(value), updated_at = VALUES(updated_at)`

	if _, err := s.db.ExecContext(ctx, stmt, key, string(value), time.Now().UTC()); err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) {
			return fmt.Errorf("%s: mysql error %d: %w", op, myErr.Number, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
