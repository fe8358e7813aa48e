package profile

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Scraper port (interface untuk pengambilan data profil)
type Scraper interface {
	Scrape(ctx context.Context, username string) (*Snapshot, error)
}

var (
	ErrNotFound    = errors.New("profile not found")
	ErrPrivate     = errors.New("profile is private")
	ErrRateLimited = errors.New("scraper rate limited")
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._]{1,255}$`)

// ErrInvalidUsername is returned by ValidateUsername.
var ErrInvalidUsername = errors.New("invalid username: use only letters, numbers, dots and underscores")

// ValidateUsername checks the handle format accepted by the scrapers.
func ValidateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return nil
}

// Hosts used by synthetic/demo data.
const (
	demoAvatarHost = "ui-avatars.com"
	demoImageHost  = "picsum.photos"
)

// IsSynthetic reports whether the profile was produced by the demo source.
// Detection is by avatar host.
func IsSynthetic(p Profile) bool {
	return strings.Contains(p.ProfilePicURL, demoAvatarHost)
}

// IsPlaceholderImage reports image URLs that never carry real text.
func IsPlaceholderImage(url string) bool {
	return strings.Contains(url, demoImageHost) || strings.Contains(url, "ui-avatars")
}
