// Package fetch downloads post images for text extraction.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"
)

// MaxImageBytes caps a single download.
const MaxImageBytes = 8 << 20

type Images struct {
	HTTP *http.Client
}

func NewImages(timeout time.Duration) *Images {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Images{HTTP: &http.Client{Timeout: timeout}}
}

// Fetch returns the body and its media type. Non-2xx responses are errors.
func (f *Images) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("fetch image: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if len(body) > MaxImageBytes {
		return nil, "", fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if !strings.HasPrefix(mediaType, "image/") {
		mediaType = http.DetectContentType(body)
		if !strings.HasPrefix(mediaType, "image/") {
			mediaType = "image/jpeg"
		}
	}
	return body, mediaType, nil
}
