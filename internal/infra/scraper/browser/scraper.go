// Package browser scrapes public profiles with a headless Chrome via chromedp.
package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/infra/scraper"
)

const defaultMaxPosts = 12

// Scraper handles extracting a profile and its recent posts
type Scraper struct {
	headless bool
	timeout  time.Duration
	maxPosts int
}

func New(headless bool, timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &Scraper{headless: headless, timeout: timeout, maxPosts: defaultMaxPosts}
}

// rawPage represents the raw data extracted from the DOM via JavaScript
type rawPage struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Bio         string    `json:"bio"`
	NotFound    bool      `json:"notFound"`
	Private     bool      `json:"private"`
	Posts       []rawPost `json:"posts"`
}

type rawPost struct {
	ImageURL  string `json:"imageUrl"`
	Caption   string `json:"caption"`
	Likes     string `json:"likes"`
	Timestamp string `json:"timestamp"`
}

const extractJS = `
(function(max) {
	const meta = (p) => document.querySelector('meta[property="' + p + '"]')?.content || '';
	const text = document.body?.innerText || '';
	const posts = [];
	document.querySelectorAll('article a[href*="/p/"], main a[href*="/p/"]').forEach(a => {
		if (posts.length >= max) return;
		const img = a.querySelector('img');
		if (!img || !img.src) return;
		posts.push({
			imageUrl: img.src,
			caption: img.alt || '',
			likes: a.getAttribute('data-likes') || '',
			timestamp: a.querySelector('time')?.getAttribute('datetime') || ''
		});
	});
	const bioEl = document.querySelector('header section h1, header section span[dir="auto"]');
	return {
		title: meta('og:title'),
		description: meta('og:description'),
		image: meta('og:image'),
		bio: bioEl?.textContent || '',
		notFound: text.includes("Sorry, this page isn't available"),
		private: text.includes('This account is private') || text.includes('This Account is Private'),
		posts: posts
	};
})(%d)
`

// Scrape loads the profile page and reads meta tags plus the visible grid.
func (s *Scraper) Scrape(ctx context.Context, username string) (*profile.Snapshot, error) {
	if err := profile.ValidateUsername(username); err != nil {
		return nil, err
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, Options(s.headless)...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	browserCtx, timeoutCancel := context.WithTimeout(browserCtx, s.timeout)
	defer timeoutCancel()

	var raw rawPage
	err := chromedp.Run(browserCtx,
		network.Enable(),
		// the not-found and private markers are matched in English
		network.SetExtraHTTPHeaders(network.Headers{"Accept-Language": "en-US,en;q=0.9"}),
		chromedp.Navigate(scraper.ProfileURL(username)),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
		chromedp.Evaluate(`window.scrollBy(0, window.innerHeight)`, nil),
		chromedp.Sleep(time.Second),
		chromedp.Evaluate(fmt.Sprintf(extractJS, s.maxPosts), &raw),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile @%s: %w", username, err)
	}
	return toSnapshot(username, raw)
}

func toSnapshot(username string, raw rawPage) (*profile.Snapshot, error) {
	if raw.NotFound || (raw.Description == "" && raw.Title == "") {
		return nil, fmt.Errorf("@%s: %w", username, profile.ErrNotFound)
	}
	p := scraper.ParseMeta(username, scraper.Meta{Title: raw.Title, Description: raw.Description, Image: raw.Image})
	p.Bio = strings.TrimSpace(raw.Bio)
	p.IsPrivate = raw.Private

	posts := make([]profile.Post, 0, len(raw.Posts))
	for _, rp := range raw.Posts {
		post := profile.Post{ImageURL: rp.ImageURL, Caption: strings.TrimSpace(rp.Caption)}
		if n, ok := scraper.ParseCount(rp.Likes); ok {
			post.Likes = profile.Int(n)
		}
		if rp.Timestamp != "" {
			if ts, err := time.Parse(time.RFC3339, rp.Timestamp); err == nil {
				post.Timestamp = profile.Time(ts)
			}
		}
		posts = append(posts, post)
	}
	return &profile.Snapshot{Profile: p, Posts: posts}, nil
}
