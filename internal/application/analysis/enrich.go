package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

// TextExtractor is satisfied by ocr.Extractor.
type TextExtractor interface {
	Extract(ctx context.Context, imageURL string) string
}

// enrich returns a copy of posts where the first limit entries carry OCR
// text. Extractions run concurrently; results land at their original index.
// Posts that already have text (e.g. from the cache) and posts past the limit
// are passed through untouched.
func (s *Service) enrich(ctx context.Context, posts []profile.Post, limit int) []profile.Post {
	out := profile.ClonePosts(posts)
	if s.OCR == nil || limit <= 0 {
		return out
	}
	n := min(limit, len(out))

	texts := make([]*string, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		if out[i].OCRText != nil {
			continue
		}
		url := out[i].ImageURL
		g.Go(func() error {
			texts[i] = profile.String(s.OCR.Extract(ctx, url))
			return nil
		})
	}
	_ = g.Wait()

	for i := 0; i < n; i++ {
		if texts[i] != nil {
			out[i].OCRText = texts[i]
		}
	}
	return out
}

// blankOCR marks every post as read with no text; demo images carry none.
func blankOCR(posts []profile.Post) []profile.Post {
	out := profile.ClonePosts(posts)
	for i := range out {
		out[i].OCRText = profile.String("")
	}
	return out
}
