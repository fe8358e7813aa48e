package apptest

import (
	"context"
	"sync"

	"github.com/bryanwahyu/leadscope/internal/domain/ai"
)

// AIClient is a scripted ai.Client. Respond is called for every request.
type AIClient struct {
	Respond func(n int, req ai.CompletionRequest) (string, error)

	mu       sync.Mutex
	requests []ai.CompletionRequest
}

func (c *AIClient) Complete(_ context.Context, req ai.CompletionRequest) (string, error) {
	c.mu.Lock()
	n := len(c.requests)
	c.requests = append(c.requests, req)
	c.mu.Unlock()
	if c.Respond == nil {
		return "", ai.ErrEmptyResponse
	}
	return c.Respond(n, req)
}

// Calls returns the number of requests seen.
func (c *AIClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// Requests returns a copy of the requests seen.
func (c *AIClient) Requests() []ai.CompletionRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]ai.CompletionRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// ImageFetcher returns fixed bytes for any url, or Err when set.
type ImageFetcher struct {
	Err error

	mu   sync.Mutex
	urls []string
}

func (f *ImageFetcher) Fetch(_ context.Context, url string) ([]byte, string, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()
	if f.Err != nil {
		return nil, "", f.Err
	}
	return []byte("\xff\xd8\xff"), "image/jpeg", nil
}

func (f *ImageFetcher) URLs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.urls))
	copy(out, f.urls)
	return out
}
