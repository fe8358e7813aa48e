package ocr

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/application"
	"github.com/bryanwahyu/leadscope/internal/application/retry"
	"github.com/bryanwahyu/leadscope/internal/domain/ai"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/infra/ai/prompt"
)

const defaultMIMEType = "image/jpeg"

// Extractor pulls visible text out of post images. Best effort: every
// failure is logged and turned into an empty string.
type Extractor struct {
	AI     ai.Client
	Images ai.ImageFetcher
	Clock  application.Clock
	Logger *zap.Logger
	// Policy defaults to retry.OCRPolicy when Attempts is zero.
	Policy retry.Policy
}

// Extract returns the text found in the image, or "" for placeholder
// sources and on any error.
func (e *Extractor) Extract(ctx context.Context, imageURL string) string {
	if imageURL == "" || profile.IsPlaceholderImage(imageURL) || e.AI == nil || e.Images == nil {
		return ""
	}
	log := e.logger().With(zap.String("image", imageURL))

	data, mime, err := e.Images.Fetch(ctx, imageURL)
	if err != nil {
		log.Warn("ocr: fetch image failed", zap.Error(err))
		return ""
	}
	if mime == "" {
		mime = defaultMIMEType
	}

	policy := e.Policy
	if policy.Attempts == 0 {
		policy = retry.OCRPolicy
	}
	req := ai.CompletionRequest{
		User:  prompt.OCRInstruction,
		Image: &ai.Image{Data: data, MIMEType: mime},
	}
	text, err := retry.Do(ctx, policy, e.Clock, func(ctx context.Context) (string, error) {
		return e.AI.Complete(ctx, req)
	})
	if err != nil {
		log.Warn("ocr: extraction failed", zap.Error(err))
		return ""
	}
	return strings.TrimSpace(text)
}

func (e *Extractor) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
