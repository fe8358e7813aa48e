// Package sqlite opens an embedded database for single-node deployments.
// The mysql repositories run on top of it unchanged.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Open opens path (":memory:" is allowed) and applies the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases shared and avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx2); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []string{
	`PRAGMA journal_mode=WAL`,
	`CREATE TABLE IF NOT EXISTS profile_cache (
  username      TEXT    NOT NULL PRIMARY KEY,
  snapshot_json TEXT    NOT NULL,
  created_at    INTEGER NOT NULL,
  expires_at    INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_profile_cache_expires ON profile_cache (expires_at)`,
	`CREATE TABLE IF NOT EXISTS analysis_history (
  id           TEXT    NOT NULL PRIMARY KEY,
  username     TEXT    NOT NULL,
  profile_json TEXT    NOT NULL,
  report_json  TEXT    NOT NULL,
  archive_url  TEXT    NOT NULL DEFAULT '',
  created_at   INTEGER NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_analysis_history_created ON analysis_history (created_at)`,
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
