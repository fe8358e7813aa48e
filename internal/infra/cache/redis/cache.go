// Package redis keeps profile snapshots in Redis with native key expiry.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/bryanwahyu/leadscope/internal/domain/cache"
)

const keyPrefix = "leadscope:cache:"

type Cache struct {
	rdb *redis.Client
}

// Connect parses a redis:// URL, falling back to a bare host:port address.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx2, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx2).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func New(rdb *redis.Client) *Cache {
	return &Cache{rdb: rdb}
}

func key(username string) string { return keyPrefix + username }

// Get treats a stored entry that is already expired at now as a miss and drops it.
func (c *Cache) Get(ctx context.Context, username string, now time.Time) (*domain.Entry, error) {
	raw, err := c.rdb.Get(ctx, key(username)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e domain.Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode cached snapshot for %s: %w", username, err)
	}
	if e.Expired(now) {
		if err := c.rdb.Del(ctx, key(username)).Err(); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &e, nil
}

// Put overwrites the key with a TTL equal to the entry lifetime.
func (c *Cache) Put(ctx context.Context, e *domain.Entry) error {
	ttl := e.ExpiresAt.Sub(e.CreatedAt)
	if ttl <= 0 {
		return c.rdb.Del(ctx, key(e.Username)).Err()
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return c.rdb.Set(ctx, key(e.Username), raw, ttl).Err()
}

// PurgeExpired is a no-op; Redis expires keys on its own.
func (c *Cache) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// Ping backs the readiness probe.
func (c *Cache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
