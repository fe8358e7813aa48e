package mysql

import (
	"encoding/json"
	"strings"
	"time"
)

// Timestamps are stored as unix milliseconds so the same queries run on
// MySQL and SQLite.
func toMillis(t time.Time) int64 { return t.UnixMilli() }

func fromMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

// jsonOrEmpty marshals v, returning "{}" for values that encode to nothing.
func jsonOrEmpty(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if s := strings.TrimSpace(string(b)); s == "" || s == "null" {
		return "{}", nil
	}
	return string(b), nil
}
