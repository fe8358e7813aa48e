package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/leadscope/internal/domain/cache"
)

type CacheRepository struct{ db *sql.DB }

func NewCacheRepository(db *sql.DB) *CacheRepository { return &CacheRepository{db: db} }

// Get returns nil for unknown or expired usernames; expired rows are deleted
func (r *CacheRepository) Get(ctx context.Context, username string, now time.Time) (*domain.Entry, error) {
	const q = `
SELECT username, snapshot, created_at, expires_at
FROM profile_cache
WHERE username=$1;`
	var (
		e   domain.Entry
		raw []byte
	)
	err := r.db.QueryRowContext(ctx, q, username).Scan(&e.Username, &raw, &e.CreatedAt, &e.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if e.Expired(now) {
		const del = `DELETE FROM profile_cache WHERE username=$1 AND expires_at<=$2;`
		if _, err := r.db.ExecContext(ctx, del, username, now); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := json.Unmarshal(raw, &e.Snapshot); err != nil {
		return nil, fmt.Errorf("decode cached snapshot for %s: %w", username, err)
	}
	return &e, nil
}

func (r *CacheRepository) Put(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO profile_cache (username, snapshot, created_at, expires_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (username) DO UPDATE SET
 snapshot = EXCLUDED.snapshot,
 created_at = EXCLUDED.created_at,
 expires_at = EXCLUDED.expires_at;`
	raw, err := json.Marshal(e.Snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx, q, e.Username, raw, e.CreatedAt, e.ExpiresAt)
	return err
}

func (r *CacheRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profile_cache WHERE expires_at<=$1;`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
