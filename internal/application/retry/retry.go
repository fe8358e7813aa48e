// Package retry runs an operation a bounded number of times with
// exponential backoff between attempts.
package retry

import (
	"context"
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/ai"
)

// Policy configures Do.
type Policy struct {
	Attempts  int           // total attempts, including the first
	BaseDelay time.Duration // delay after the first failure; doubles each retry
	Retryable func(error) bool
}

var (
	// ReportPolicy is used for report generation calls.
	ReportPolicy = Policy{Attempts: 3, BaseDelay: time.Second, Retryable: ai.IsTransient}
	// OCRPolicy is used for image text extraction calls.
	OCRPolicy = Policy{Attempts: 2, BaseDelay: 500 * time.Millisecond, Retryable: ai.IsTransient}
)

// Sleeper is satisfied by application.Clock.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Do calls fn until it succeeds, returns a non-retryable error, or the
// attempts run out. Attempt n (0-based) that fails with a retryable error
// waits BaseDelay*2^n before the next one.
func Do[T any](ctx context.Context, p Policy, s Sleeper, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	var zero T
	for n := 0; ; n++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		if n == attempts-1 || p.Retryable == nil || !p.Retryable(err) {
			return zero, err
		}
		if serr := s.Sleep(ctx, p.BaseDelay<<n); serr != nil {
			return zero, serr
		}
	}
}
