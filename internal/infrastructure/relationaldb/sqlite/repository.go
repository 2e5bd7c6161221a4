// Package sqlite provides a SQLite implementation of the PersonRepository interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/wikipeople/internal/domain/ports"
	"github.com/ersonp/wikipeople/internal/infrastructure/config"
)

// psql builds every statement with "?" placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repository implements ports.PersonRepository using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode so reports can read while a run writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist. The people and
// people_to_profession tables keep the column layout of existing datasets.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS people (
		title TEXT PRIMARY KEY,
		birth_year INTEGER NOT NULL,
		reference_count INTEGER NOT NULL,
		summary TEXT,
		image_fname TEXT
	);

	-- Derived from people.summary and the keyword ruleset; rebuilt wholesale
	CREATE TABLE IF NOT EXISTS people_to_profession (
		title TEXT,
		profession TEXT,
		UNIQUE(title, profession)
	);
	CREATE INDEX IF NOT EXISTS idx_people_to_profession_profession ON people_to_profession(profession);

	-- Run log (one row per pipeline step)
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// WithTx runs fn in a transaction, committing on nil and rolling back otherwise.
// fn must only use the handle it is given.
func (r *Repository) WithTx(ctx context.Context, fn func(tx ports.PersonTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(&txHandle{q: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rolling back: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// txHandle implements ports.PersonTx on an open transaction.
type txHandle struct {
	q querier
}

// exec builds and runs a statement, returning the affected row count.
func exec(ctx context.Context, q querier, b sq.Sqlizer, what string) (int, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building SQL for %s: %w", what, err)
	}

	res, err := q.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: reading affected rows: %w", what, err)
	}
	return int(n), nil
}

// countRows runs a single-column COUNT query.
func countRows(ctx context.Context, q querier, b sq.SelectBuilder, what string) (int, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("building SQL for %s: %w", what, err)
	}

	var n int
	if err := q.QueryRowContext(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", what, err)
	}
	return n, nil
}

// queryStrings runs a single-column query and collects the values.
func queryStrings(ctx context.Context, q querier, b sq.SelectBuilder, what string) ([]string, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building SQL for %s: %w", what, err)
	}

	rows, err := q.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("%s: scanning: %w", what, err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
