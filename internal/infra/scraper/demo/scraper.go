// Package demo produces synthetic profiles for local runs and for when the
// real scrapers are unavailable. Avatars come from ui-avatars.com, which is
// how the pipeline recognises the data as synthetic.
package demo

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"time"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

const postCount = 9

var captions = []string{
	"New week, new goals. Who is in?",
	"Behind the scenes of today's shoot",
	"3 tips I wish I knew when I started",
	"Client results speak louder than words",
	"Link in bio for the free guide",
	"Saturday vibes",
	"Q&A: your most asked questions answered",
	"Big announcement coming soon",
	"Thank you for 10k!",
}

type Scraper struct {
	Now func() time.Time
}

func New() *Scraper { return &Scraper{Now: time.Now} }

func (s *Scraper) Scrape(_ context.Context, username string) (*profile.Snapshot, error) {
	if err := profile.ValidateUsername(username); err != nil {
		return nil, err
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(username))
	seed := int(h.Sum32())

	followers := 500 + seed%250000
	p := profile.Profile{
		Username:      username,
		FullName:      username,
		Bio:           "Demo profile for @" + username,
		ProfilePicURL: "https://ui-avatars.com/api/?size=150&name=" + url.QueryEscape(username),
		Followers:     profile.Int(followers),
		Following:     profile.Int(100 + seed%900),
		PostsCount:    profile.Int(postCount + seed%400),
	}

	now := s.Now()
	posts := make([]profile.Post, postCount)
	for i := range posts {
		likes := followers/50 + (seed>>uint(i))%200
		posts[i] = profile.Post{
			ImageURL:  fmt.Sprintf("https://picsum.photos/seed/%s-%d/600/600", url.PathEscape(username), i),
			Caption:   captions[(seed+i)%len(captions)],
			Likes:     profile.Int(likes),
			Timestamp: profile.Time(now.Add(-time.Duration(i*3) * 24 * time.Hour)),
		}
	}
	return &profile.Snapshot{Profile: p, Posts: posts}, nil
}
