// Package sqlite provides a SQLite-backed implementation of the build
// history port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/medley-labs/medley/internal/core/domain"
	"github.com/medley-labs/medley/internal/core/ports"
)

// Adapter implements the build repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

var _ ports.BuildRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	// Auto-migrate on startup for local dev
	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) Record(ctx context.Context, rec domain.BuildRecord) error {
	query := `
		INSERT INTO builds (id, source, name, url, image_url, track_count, skipped, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := a.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Source,
		rec.Name,
		rec.URL,
		rec.ImageURL,
		rec.TrackCount,
		rec.Skipped,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("failed to record build: %w", err)
	}
	return nil
}

func (a *Adapter) Recent(ctx context.Context, limit int) ([]domain.BuildRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, source, name, url, image_url, track_count, skipped, created_at
		FROM builds
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load builds: %w", err)
	}
	defer rows.Close()

	records := []domain.BuildRecord{}
	for rows.Next() {
		var rec domain.BuildRecord
		var createdAt string
		if err := rows.Scan(
			&rec.ID,
			&rec.Source,
			&rec.Name,
			&rec.URL,
			&rec.ImageURL,
			&rec.TrackCount,
			&rec.Skipped,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan build: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.CreatedAt = ts
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate builds: %w", err)
	}

	return records, nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS builds (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		name TEXT NOT NULL,
		url TEXT NOT NULL,
		image_url TEXT,
		track_count INTEGER NOT NULL,
		skipped INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_builds_created_at ON builds(created_at);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}
	return nil
}
