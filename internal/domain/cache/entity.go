package cache

import (
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

// Entry is a cached snapshot keyed by username.
type Entry struct {
	Username  string           `json:"username"`
	Snapshot  profile.Snapshot `json:"snapshot"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// NewEntry stamps an entry that lives for ttl from now.
func NewEntry(username string, snap profile.Snapshot, now time.Time, ttl time.Duration) *Entry {
	return &Entry{Username: username, Snapshot: snap, CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

// Expired reports whether the entry can no longer be served at now.
func (e *Entry) Expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}
