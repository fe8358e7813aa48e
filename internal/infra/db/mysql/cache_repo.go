package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/leadscope/internal/domain/cache"
)

// CacheRepository stores profile snapshots. The queries only use "?"
// placeholders and REPLACE, so the repository also runs on SQLite.
type CacheRepository struct {
	db *sql.DB
}

func NewCacheRepository(db *sql.DB) *CacheRepository {
	return &CacheRepository{db: db}
}

// Get returns nil when the username is unknown or expired. Expired rows are deleted.
func (r *CacheRepository) Get(ctx context.Context, username string, now time.Time) (*domain.Entry, error) {
	const q = `
SELECT username, snapshot_json, created_at, expires_at
FROM profile_cache
WHERE username=?
LIMIT 1;
`
	var (
		e                  domain.Entry
		raw                string
		created, expiresAt int64
	)
	err := r.db.QueryRowContext(ctx, q, username).Scan(&e.Username, &raw, &created, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.CreatedAt = fromMillis(created)
	e.ExpiresAt = fromMillis(expiresAt)

	if e.Expired(now) {
		// only drop the row we saw; a concurrent Put may have refreshed it
		const del = `DELETE FROM profile_cache WHERE username=? AND expires_at<=?;`
		if _, err := r.db.ExecContext(ctx, del, username, toMillis(now)); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := json.Unmarshal([]byte(raw), &e.Snapshot); err != nil {
		return nil, fmt.Errorf("decode cached snapshot for %s: %w", username, err)
	}
	return &e, nil
}

// Put upserts the entry; last writer wins.
func (r *CacheRepository) Put(ctx context.Context, e *domain.Entry) error {
	const q = `
REPLACE INTO profile_cache (username, snapshot_json, created_at, expires_at)
VALUES (?,?,?,?);
`
	raw, err := jsonOrEmpty(e.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q, e.Username, raw, toMillis(e.CreatedAt), toMillis(e.ExpiresAt))
	return err
}

// PurgeExpired deletes every entry expired at now and returns how many went.
func (r *CacheRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profile_cache WHERE expires_at<=?;`, toMillis(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
