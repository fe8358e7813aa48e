// Package web reads a public profile page over plain HTTP and parses its og: tags.
// It never sees posts; the page does not render them without a browser.
package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
	"github.com/bryanwahyu/leadscope/internal/infra/scraper"
)

const (
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxBody   = 2 << 20
)

type Scraper struct {
	HTTP *http.Client
	// URL builds the page address; defaults to scraper.ProfileURL.
	URL func(username string) string
}

func New(timeout time.Duration) *Scraper {
	return &Scraper{HTTP: &http.Client{Timeout: timeout}, URL: scraper.ProfileURL}
}

func (s *Scraper) Scrape(ctx context.Context, username string) (*profile.Snapshot, error) {
	if err := profile.ValidateUsername(username); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(username), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch profile page: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("@%s: %w", username, profile.ErrNotFound)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("@%s: %w", username, profile.ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch profile page: HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("parse profile page: %w", err)
	}
	meta := readMeta(doc)
	if meta.Description == "" && meta.Title == "" {
		return nil, fmt.Errorf("@%s: %w", username, profile.ErrNotFound)
	}

	p := scraper.ParseMeta(username, meta)
	p.IsPrivate = strings.Contains(strings.ToLower(textOf(doc)), "this account is private")
	return &profile.Snapshot{Profile: p, Posts: []profile.Post{}}, nil
}

func readMeta(n *html.Node) scraper.Meta {
	var m scraper.Meta
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			key := attr(n, "property")
			if key == "" {
				key = attr(n, "name")
			}
			content := attr(n, "content")
			switch key {
			case "og:title":
				m.Title = content
			case "og:description", "description":
				if m.Description == "" || key == "og:description" {
					m.Description = content
				}
			case "og:image":
				m.Image = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return m
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
