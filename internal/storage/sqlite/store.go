// Package sqlite stores finished games in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/countdown/internal/storage/results"
	"github.com/cory-johannsen/countdown/migrations"
)

// Store persists results in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens (creating if needed) the SQLite file at path and applies the
// embedded migrations.
//
// Precondition: path must be non-empty.
// Postcondition: Returns a migrated Store or a non-nil error.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}

	dsn := cleanPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func applyMigrations(sqlDB *sql.DB) error {
	driver, err := migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}
	src, err := migrations.SQLite()
	if err != nil {
		return err
	}
	defer src.Close()

	// Closing the migrator would close sqlDB, so only the source is closed.
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts r. Saving the same game twice is a no-op.
func (s *Store) Save(ctx context.Context, r results.Result) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT OR IGNORE INTO results (id, played_at, target, numbers, expression, distance, scored)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID.String(), toMillis(r.PlayedAt), r.Target, joinNumbers(r.Numbers), r.Expression, r.Distance, r.Scored,
	)
	if err != nil {
		return fmt.Errorf("saving result %s: %w", r.ID, err)
	}
	return nil
}

// Recent returns up to limit results, newest first.
//
// Postcondition: Returns ErrInvalidLimit for limit < 1.
func (s *Store) Recent(ctx context.Context, limit int) ([]results.Result, error) {
	if err := results.CheckLimit(limit); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, played_at, target, numbers, expression, distance, scored
		 FROM results
		 ORDER BY played_at DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying recent results: %w", err)
	}
	defer rows.Close()

	var out []results.Result
	for rows.Next() {
		var (
			r        results.Result
			id       string
			playedAt int64
			numbers  string
		)
		if err := rows.Scan(&id, &playedAt, &r.Target, &numbers, &r.Expression, &r.Distance, &r.Scored); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing result id %q: %w", id, err)
		}
		if r.Numbers, err = splitNumbers(numbers); err != nil {
			return nil, fmt.Errorf("parsing numbers of %s: %w", id, err)
		}
		r.PlayedAt = fromMillis(playedAt)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return out, nil
}

func joinNumbers(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

func splitNumbers(s string) ([]int, error) {
	if s == "" {
		return []int{}, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
