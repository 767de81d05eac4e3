package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hacktivities2025-ctrl/zirv--v2/internal/domain"
	"github.com/hacktivities2025-ctrl/zirv--v2/internal/shared"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db    *sql.DB
	retry shared.RetryPolicy
}

// Ensure SQLiteStore implements Repository.
var _ Repository = (*SQLiteStore)(nil)

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL lets the admin listing read while the API writes.
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db, retry: shared.DefaultRetryPolicy}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS activity (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		operation TEXT NOT NULL,
		role TEXT NOT NULL,
		input_chars INTEGER NOT NULL,
		status TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		duration_ms INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_activity_created ON activity(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// RecordActivity inserts an activity entry, retrying on SQLITE_BUSY.
func (s *SQLiteStore) RecordActivity(ctx context.Context, entry *domain.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
	INSERT INTO activity (operation, role, input_chars, status, detail, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	return shared.RetryOnConflict(ctx, s.retry, "record activity", func() error {
		result, err := s.db.ExecContext(ctx, query,
			string(entry.Operation), entry.Role, entry.InputChars,
			string(entry.Status), entry.Detail, entry.DurationMs,
			entry.CreatedAt.UnixMilli(),
		)
		if err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		entry.ID = id
		return nil
	})
}

// ListActivity returns up to limit entries, newest first.
func (s *SQLiteStore) ListActivity(ctx context.Context, limit int) ([]*domain.ActivityEntry, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	query := `
		SELECT id, operation, role, input_chars, status, detail, duration_ms, created_at
		FROM activity ORDER BY created_at DESC, id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Warn("failed to close activity rows", "error", closeErr)
		}
	}()

	entries := make([]*domain.ActivityEntry, 0, limit)
	for rows.Next() {
		var e domain.ActivityEntry
		var op, status string
		var createdAt int64

		if err := rows.Scan(
			&e.ID, &op, &e.Role, &e.InputChars,
			&status, &e.Detail, &e.DurationMs, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}

		e.Operation = domain.Operation(op)
		e.Status = domain.ActivityStatus(status)
		e.CreatedAt = time.UnixMilli(createdAt)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity: %w", err)
	}

	return entries, nil
}

// PruneActivity removes entries older than cutoff.
func (s *SQLiteStore) PruneActivity(ctx context.Context, cutoff time.Time) (int64, error) {
	var removed int64
	err := shared.RetryOnConflict(ctx, s.retry, "prune activity", func() error {
		result, err := s.db.ExecContext(ctx, `DELETE FROM activity WHERE created_at < ?`, cutoff.UnixMilli())
		if err != nil {
			return fmt.Errorf("delete activity: %w", err)
		}
		removed, err = result.RowsAffected()
		return err
	})
	return removed, err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
