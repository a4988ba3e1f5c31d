package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/ration/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/ration/internal/core/domain"
	"github.com/custodia-labs/ration/internal/core/ports/driven"
	"github.com/custodia-labs/ration/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.FoodDataset = (*Store)(nil)

// DefaultFileName is the database file name inside the data directory.
const DefaultFileName = "foods.db"

// Store is a SQLite food dataset.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultPath returns ~/.ration/data/foods.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ration", "data", DefaultFileName), nil
}

// NewStore opens or creates the database at path and runs migrations.
// If path is empty, defaults to DefaultPath.
func NewStore(path string) (*Store, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: path,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Open opens an existing dataset database. A missing file is reported as
// domain.ErrUnavailable rather than created.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s not found", domain.ErrUnavailable, path)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return NewStore(path)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Scan calls fn for each stored food in import order.
func (s *Store) Scan(ctx context.Context, fn func(domain.FoodRecord) bool) (domain.SearchStats, error) {
	var stats domain.SearchStats

	rows, err := s.db.QueryContext(ctx, `SELECT name, calories, raw FROM foods ORDER BY id`)
	if err != nil {
		return stats, fmt.Errorf("%w: querying foods: %w", domain.ErrUnavailable, err)
	}
	defer rows.Close()

	for rows.Next() {
		stats.TotalEntries++

		var rec domain.FoodRecord
		var calories sql.NullFloat64
		var raw string
		if err := rows.Scan(&rec.Name, &calories, &raw); err != nil {
			stats.ErrorsEncountered++
			continue
		}
		if !json.Valid([]byte(raw)) {
			stats.ErrorsEncountered++
			continue
		}
		rec.Raw = json.RawMessage(raw)
		if calories.Valid {
			v := calories.Float64
			rec.Calories = &v
		}

		if !fn(rec) {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("scanning foods: %w", err)
	}
	return stats, nil
}

// Count returns the number of stored foods.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM foods`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting foods: %w", err)
	}
	return n, nil
}

// ImportStats summarises an import.
type ImportStats struct {
	Imported int
	Source   domain.SearchStats
}

// Import replaces the stored foods with every record of src, preserving
// order. Names are stored as src extracted them, so the match field is
// fixed at import time. The import runs in one transaction.
func (s *Store) Import(ctx context.Context, src driven.FoodDataset) (ImportStats, error) {
	var result ImportStats

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, `DELETE FROM foods`); err != nil {
		return result, fmt.Errorf("clearing foods: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO foods (name, calories, raw) VALUES (?, ?, ?)`)
	if err != nil {
		return result, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var insertErr error
	stats, err := src.Scan(ctx, func(rec domain.FoodRecord) bool {
		raw, err := json.Marshal(rec)
		if err != nil {
			insertErr = fmt.Errorf("encoding %q: %w", rec.Name, err)
			return false
		}
		if _, err := stmt.ExecContext(ctx, rec.Name, nullFloat(rec.Calories), string(raw)); err != nil {
			insertErr = fmt.Errorf("inserting %q: %w", rec.Name, err)
			return false
		}
		result.Imported++
		return true
	})
	result.Source = stats
	if err != nil {
		return result, fmt.Errorf("reading source: %w", err)
	}
	if insertErr != nil {
		return result, insertErr
	}

	if err := tx.Commit(); err != nil {
		return result, fmt.Errorf("committing import: %w", err)
	}

	logger.Info("Imported %d foods into %s (%d skipped)", result.Imported, s.path, stats.ErrorsEncountered)
	return result, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_foods.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
		logger.Debug("Applied migration %s", name)
	}

	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
