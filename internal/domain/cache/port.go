package cache

import (
	"context"
	"time"
)

// Repository port untuk cache snapshot profil.
type Repository interface {
	// Get returns nil when the username is absent or expired at now.
	// Expired rows are removed during the read.
	Get(ctx context.Context, username string, now time.Time) (*Entry, error)
	// Put replaces any existing entry for the username; last writer wins.
	Put(ctx context.Context, e *Entry) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
