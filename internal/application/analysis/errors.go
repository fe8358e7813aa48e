package analysis

import (
	"errors"
	"fmt"

	appreport "github.com/bryanwahyu/leadscope/internal/application/report"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

var (
	ErrInvalidUsername  = profile.ErrInvalidUsername
	ErrBriefingTooShort = appreport.ErrBriefingTooShort
	ErrBatchSize        = errors.New("usernames must contain between 1 and 50 entries")
	ErrInvalidPersona   = errors.New("invalid target persona (allowed: curious, prospect, customer, influencer, none)")
	ErrInvalidFilters   = errors.New("invalid filters")
)

// ValidationError marks a request rejected before any work was done.
// The message is safe to return to the caller verbatim.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error { return &ValidationError{Err: err} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalidf(base error, format string, args ...any) error {
	return invalid(fmt.Errorf("%w: "+format, append([]any{base}, args...)...))
}
