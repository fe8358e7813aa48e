package history

import (
	"context"
	"errors"
)

// ErrNotFound is returned by GetByID for unknown ids.
var ErrNotFound = errors.New("history record not found")

// Repository port for persisting and querying analyses
type Repository interface {
	Append(ctx context.Context, r *Record) error
	// ListRecent returns records newest first.
	ListRecent(ctx context.Context, limit int) ([]*Record, error)
	GetByID(ctx context.Context, id RecordID) (*Record, error)
}

// Archive keeps a raw copy of each record in object storage.
type Archive interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}
