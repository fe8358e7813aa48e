package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/leadscope/internal/domain/cache"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/infra/cache/redis"
)

func newCache(t *testing.T) (*redis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return redis.New(rdb), mr
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newCache(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	snap := profile.Snapshot{Profile: profile.Profile{Username: "ana", Followers: profile.Int(42)}}
	require.NoError(t, c.Put(ctx, cache.NewEntry("ana", snap, now, time.Hour)))
	assert.Equal(t, time.Hour, mr.TTL("leadscope:cache:ana"))

	got, err := c.Get(ctx, "ana", now.Add(time.Minute))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 42, got.Snapshot.Profile.FollowerCount())

	got, err = c.Get(ctx, "ana", now.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("leadscope:cache:ana"))

	got, err = c.Get(ctx, "nobody", now)
	require.NoError(t, err)
	assert.Nil(t, got)

	n, err := c.PurgeExpired(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := redis.Connect(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.NoError(t, rdb.Close())
}
