package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profile_cache (
  username      VARCHAR(255) NOT NULL PRIMARY KEY,
  snapshot_json LONGTEXT     NOT NULL,
  created_at    BIGINT       NOT NULL,
  expires_at    BIGINT       NOT NULL,
  INDEX idx_profile_cache_expires (expires_at)
)`,
	`CREATE TABLE IF NOT EXISTS analysis_history (
  id           VARCHAR(36)   NOT NULL PRIMARY KEY,
  username     VARCHAR(255)  NOT NULL,
  profile_json LONGTEXT      NOT NULL,
  report_json  LONGTEXT      NOT NULL,
  archive_url  VARCHAR(1024) NOT NULL DEFAULT '',
  created_at   BIGINT        NOT NULL,
  INDEX idx_analysis_history_created (created_at)
)`,
}

// Migrate creates the tables when missing. Statements run one by one since
// the driver rejects multi-statement strings by default.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
