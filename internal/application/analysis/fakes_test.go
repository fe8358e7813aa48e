package analysis_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/cache"
	"github.com/bryanwahyu/leadscope/internal/domain/history"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

type fakeScraper struct {
	mu        sync.Mutex
	snapshots map[string]profile.Snapshot
	errs      map[string]error
	calls     []string
}

func (f *fakeScraper) Scrape(_ context.Context, username string) (*profile.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, username)
	if err, ok := f.errs[username]; ok {
		return nil, err
	}
	snap, ok := f.snapshots[username]
	if !ok {
		return nil, profile.ErrNotFound
	}
	snap.Posts = profile.ClonePosts(snap.Posts)
	return &snap, nil
}

type memCache struct {
	mu      sync.Mutex
	entries map[string]*cache.Entry
	puts    int
}

func newMemCache() *memCache { return &memCache{entries: map[string]*cache.Entry{}} }

func (c *memCache) Get(_ context.Context, username string, now time.Time) (*cache.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[username]
	if !ok {
		return nil, nil
	}
	if e.Expired(now) {
		delete(c.entries, username)
		return nil, nil
	}
	cp := *e
	cp.Snapshot.Posts = profile.ClonePosts(e.Snapshot.Posts)
	return &cp, nil
}

func (c *memCache) Put(_ context.Context, e *cache.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	c.entries[e.Username] = e
	return nil
}

func (c *memCache) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for k, e := range c.entries {
		if e.Expired(now) {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

type memHistory struct {
	mu      sync.Mutex
	records []*history.Record
}

func (h *memHistory) Append(_ context.Context, r *history.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *memHistory) ListRecent(_ context.Context, limit int) ([]*history.Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := append([]*history.Record(nil), h.records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (h *memHistory) GetByID(_ context.Context, id history.RecordID) (*history.Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, history.ErrNotFound
}

func (h *memHistory) usernames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.Username
	}
	return out
}

type fakeOCR struct {
	mu   sync.Mutex
	urls []string
}

func (f *fakeOCR) Extract(_ context.Context, url string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	return "text:" + url
}

func (f *fakeOCR) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.urls)
}

type fakeArchive struct {
	keys []string
}

func (a *fakeArchive) Put(_ context.Context, key string, body []byte, _ string) (string, error) {
	if len(body) == 0 {
		return "", fmt.Errorf("empty body")
	}
	a.keys = append(a.keys, key)
	return "http://minio.local/leadscope/" + key, nil
}
