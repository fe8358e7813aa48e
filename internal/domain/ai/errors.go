package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrOverloaded indicates the provider is temporarily unavailable (HTTP 503, "overloaded").
var ErrOverloaded = errors.New("ai provider overloaded")

// ErrEmptyResponse is returned when the provider answered without any text.
var ErrEmptyResponse = errors.New("ai returned empty response")

// IsTransient reports errors worth retrying.
func IsTransient(err error) bool {
	return errors.Is(err, ErrQuotaExceeded) || errors.Is(err, ErrOverloaded)
}
