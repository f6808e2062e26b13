// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	sqlite "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mmynk/cantineo/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB

	// hook, when set, runs between the steps of multi-record transactions.
	// Tests use it to force a failure midway.
	hook func(step string) error
}

// Open opens (creating if needed) the database at dbPath and makes sure the
// schema exists. It does not seed settings; call Initialize for that.
func Open(dbPath string) (*Store, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %w", storage.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", storage.ErrStorageUnavailable, err)
	}

	// One connection: every transaction is serialized by the engine and
	// per-connection pragmas stick.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to open database: %w", storage.ErrStorageUnavailable, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: failed to apply %q: %w", storage.ErrStorageUnavailable, pragma, err)
		}
	}

	if err := runMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to run migrations: %w", storage.ErrStorageUnavailable, err)
	}

	return &Store{db: db}, nil
}

// New opens the database at dbPath and initializes it.
func New(dbPath string) (*Store, error) {
	s, err := Open(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Initialize(context.Background()); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Initialize ensures the schema exists and seeds the default settings.
// Safe to call any number of times.
func (s *Store) Initialize(ctx context.Context) error {
	if err := runMigrations(ctx, s.db); err != nil {
		return fmt.Errorf("%w: failed to run migrations: %w", storage.ErrStorageUnavailable, err)
	}
	if err := seedSettings(ctx, s.db); err != nil {
		return fmt.Errorf("%w: failed to seed settings: %w", storage.ErrStorageUnavailable, err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// withTx runs fn inside a transaction, committing only if fn succeeds.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) step(name string) error {
	if s.hook == nil {
		return nil
	}
	return s.hook(name)
}

// employeeExists reports whether id names a stored employee.
func employeeExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, "SELECT 1 FROM employees WHERE id = ?", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check employee existence: %w", err)
	}
	return true, nil
}

// isConstraintViolation reports whether err is a SQLite constraint failure.
func isConstraintViolation(err error) bool {
	var serr *sqlite.Error
	if errors.As(err, &serr) {
		// Mask off the extended code.
		return serr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
