// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/petrossemanhica07/app-poupanca/internal/models"
	"github.com/petrossemanhica07/app-poupanca/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path. It creates the
// parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// execer is satisfied by both *sql.DB and *sql.Tx so the balance upsert can
// run standalone or inside an enclosing transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// upsertBalance applies a signed delta to the (scope, ref) balance row,
// creating it when absent. The whole read-modify-write is a single atomic
// statement, so concurrent writers cannot interleave at the row level.
func upsertBalance(ctx context.Context, q execer, scope models.Scope, refID int64, delta float64) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO balances (scope, ref_id, saldo, atualizado_em)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(scope, ref_id) DO UPDATE SET
			saldo = saldo + excluded.saldo,
			atualizado_em = excluded.atualizado_em`,
		scope, refID, delta, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert %s balance %d: %w", scope, refID, err)
	}
	return nil
}
