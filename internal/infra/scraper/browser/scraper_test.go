package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

func TestToSnapshot(t *testing.T) {
	raw := rawPage{
		Title:       "Clinica Sorriso (@clinica.sorriso) • Instagram photos and videos",
		Description: "45.2K Followers, 120 Following, 310 Posts - See Instagram photos and videos from Clinica Sorriso (@clinica.sorriso)",
		Image:       "https://cdn.example.com/a.jpg",
		Bio:         "  Dental care in Porto  ",
		Posts: []rawPost{
			{ImageURL: "https://cdn.example.com/1.jpg", Caption: "Before/after", Likes: "1,204", Timestamp: "2025-04-01T10:00:00.000Z"},
			{ImageURL: "https://cdn.example.com/2.jpg"},
		},
	}

	snap, err := toSnapshot("clinica.sorriso", raw)
	require.NoError(t, err)
	assert.Equal(t, 45200, *snap.Profile.Followers)
	assert.Equal(t, "Dental care in Porto", snap.Profile.Bio)
	require.Len(t, snap.Posts, 2)
	assert.Equal(t, 1204, *snap.Posts[0].Likes)
	assert.Equal(t, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC), *snap.Posts[0].Timestamp)
	assert.Nil(t, snap.Posts[1].Likes)
	assert.Nil(t, snap.Posts[1].Timestamp)
}

func TestToSnapshot_NotFound(t *testing.T) {
	_, err := toSnapshot("ghost", rawPage{NotFound: true, Title: "x"})
	assert.ErrorIs(t, err, profile.ErrNotFound)

	_, err = toSnapshot("ghost", rawPage{})
	assert.ErrorIs(t, err, profile.ErrNotFound)
}
