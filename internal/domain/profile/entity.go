package profile

import "time"

// Post is one item of a profile's feed, in the order the scraper returned it.
type Post struct {
	ImageURL  string     `json:"imageUrl"`
	Caption   string     `json:"caption"`
	Likes     *int       `json:"likes,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
	OCRText   *string    `json:"ocrText,omitempty"`
}

// LikeCount returns the like count, 0 when unknown.
func (p Post) LikeCount() int {
	if p.Likes == nil {
		return 0
	}
	return *p.Likes
}

// Profile is the public view of a social account.
// Counts are nil when the source did not expose them (private or hidden).
type Profile struct {
	Username      string `json:"username"`
	FullName      string `json:"fullName,omitempty"`
	Bio           string `json:"bio,omitempty"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
	Followers     *int   `json:"followers,omitempty"`
	Following     *int   `json:"following,omitempty"`
	PostsCount    *int   `json:"postsCount,omitempty"`
	IsPrivate     bool   `json:"isPrivate"`
	Posts         []Post `json:"posts,omitempty"`
}

// FollowerCount returns the follower count, 0 when unknown.
func (p Profile) FollowerCount() int {
	if p.Followers == nil {
		return 0
	}
	return *p.Followers
}

// Snapshot is what a scraper produces and what the cache stores.
type Snapshot struct {
	Profile Profile `json:"profile"`
	Posts   []Post  `json:"posts"`
}

// WithPosts returns a copy of the profile carrying the given posts.
func (p Profile) WithPosts(posts []Post) Profile {
	p.Posts = posts
	return p
}

// ClonePosts copies the slice so callers can replace elements without
// touching the original backing array.
func ClonePosts(posts []Post) []Post {
	if posts == nil {
		return nil
	}
	out := make([]Post, len(posts))
	copy(out, posts)
	return out
}

// Int and String are small helpers for the optional fields.
func Int(v int) *int { return &v }

func String(v string) *string { return &v }

func Time(v time.Time) *time.Time { return &v }
