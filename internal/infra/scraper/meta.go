// Package scraper holds the pieces shared by the profile scrapers.
package scraper

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

// ProfileURL is the public page of a handle.
func ProfileURL(username string) string {
	return "https://www.instagram.com/" + username + "/"
}

var (
	countPattern = regexp.MustCompile(`(?i)([\d.,]+\s*[km]?)\s+(followers|following|posts)`)
	namePattern  = regexp.MustCompile(`from (.+?) \(@([A-Za-z0-9._]+)\)`)
)

// Meta is what the public page exposes through its og: tags.
type Meta struct {
	Title       string
	Description string
	Image       string
}

// ParseMeta fills a profile from the og: tags. Counts that cannot be read stay nil.
func ParseMeta(username string, m Meta) profile.Profile {
	p := profile.Profile{Username: username, ProfilePicURL: m.Image}
	for _, match := range countPattern.FindAllStringSubmatch(m.Description, -1) {
		n, ok := ParseCount(match[1])
		if !ok {
			continue
		}
		switch strings.ToLower(match[2]) {
		case "followers":
			p.Followers = profile.Int(n)
		case "following":
			p.Following = profile.Int(n)
		case "posts":
			p.PostsCount = profile.Int(n)
		}
	}
	if match := namePattern.FindStringSubmatch(m.Description); match != nil {
		p.FullName = strings.TrimSpace(match[1])
	} else if i := strings.Index(m.Title, " (@"); i > 0 {
		p.FullName = strings.TrimSpace(m.Title[:i])
	}
	return p
}

// ParseCount reads "1,234", "12.5K" or "3M".
func ParseCount(s string) (int, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "K"):
		mult, s = 1e3, strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult, s = 1e6, strings.TrimSuffix(s, "M")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return int(f*mult + 0.5), true
}

// Fallback serves from Secondary when Primary fails for any reason other
// than a private or invalid handle.
type Fallback struct {
	Primary   profile.Scraper
	Secondary profile.Scraper
	Logger    *zap.Logger
}

func (f *Fallback) Scrape(ctx context.Context, username string) (*profile.Snapshot, error) {
	snap, err := f.Primary.Scrape(ctx, username)
	if err == nil {
		return snap, nil
	}
	if errors.Is(err, profile.ErrPrivate) || errors.Is(err, profile.ErrInvalidUsername) || ctx.Err() != nil {
		return nil, err
	}
	if f.Logger != nil {
		f.Logger.Warn("scrape failed, serving demo data", zap.String("username", username), zap.Error(err))
	}
	return f.Secondary.Scrape(ctx, username)
}
