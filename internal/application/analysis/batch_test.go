package analysis_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/leadscope/internal/application/analysis"
	"github.com/bryanwahyu/leadscope/internal/domain/profile"
)

func TestAnalyzeBatch_PartialFailureKeepsOrder(t *testing.T) {
	f := newFixture(map[string]profile.Snapshot{
		"a": realSnapshot("a", posts(2, time.Hour)),
		"c": realSnapshot("c", posts(2, time.Hour)),
	}, map[string]error{"fail": errors.New("upstream 500")})

	res, err := f.svc.AnalyzeBatch(context.Background(), analysis.BatchCommand{
		Usernames: []string{"a", "fail", "c"},
		Briefing:  briefing,
	})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 2, res.Completed)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Results, 3)

	assert.Equal(t, "a", res.Results[0].Username)
	assert.True(t, res.Results[0].Success)
	require.NotNil(t, res.Results[0].Data)
	assert.Len(t, res.Results[0].Data.Profile.Posts, 2)

	assert.Equal(t, "fail", res.Results[1].Username)
	assert.False(t, res.Results[1].Success)
	assert.Contains(t, res.Results[1].Error, "upstream 500")
	assert.Nil(t, res.Results[1].Data)

	assert.Equal(t, "c", res.Results[2].Username)
	assert.True(t, res.Results[2].Success)

	// pacing between items, none after the last
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, f.clock.Sleeps())
	assert.Equal(t, []string{"a", "c"}, f.history.usernames())
}

func TestAnalyzeBatch_CachesForADay(t *testing.T) {
	f := newFixture(map[string]profile.Snapshot{"a": realSnapshot("a", posts(1, time.Hour))}, nil)
	ctx := context.Background()

	_, err := f.svc.AnalyzeBatch(ctx, analysis.BatchCommand{Usernames: []string{"a"}, Briefing: briefing})
	require.NoError(t, err)
	assert.Empty(t, f.clock.Sleeps())

	entry, err := f.cache.Get(ctx, "a", f.clock.Now())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, start.Add(24*time.Hour), entry.ExpiresAt)

	res, err := f.svc.AnalyzeBatch(ctx, analysis.BatchCommand{Usernames: []string{"a"}, Briefing: briefing})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Completed)
	assert.Len(t, f.scraper.calls, 1)
	assert.Equal(t, 1, f.cache.puts)
}

func TestAnalyzeBatch_OCRCappedAtThree(t *testing.T) {
	f := newFixture(map[string]profile.Snapshot{"a": realSnapshot("a", posts(10, time.Hour))}, nil)

	res, err := f.svc.AnalyzeBatch(context.Background(), analysis.BatchCommand{Usernames: []string{"a"}, Briefing: briefing})
	require.NoError(t, err)
	assert.Equal(t, 3, f.ocr.calls())

	got := res.Results[0].Data.Profile.Posts
	require.Len(t, got, 10)
	for i, p := range got {
		if i < 3 {
			require.NotNil(t, p.OCRText, "post %d", i)
			assert.Equal(t, "text:"+p.ImageURL, *p.OCRText)
			continue
		}
		assert.Nil(t, p.OCRText, "post %d", i)
		assert.Equal(t, posts(10, time.Hour)[i], p)
	}
}

func TestAnalyzeBatch_SyntheticSkipsOCRAndCache(t *testing.T) {
	snap := realSnapshot("demo", posts(3, time.Hour))
	snap.Profile.ProfilePicURL = "https://ui-avatars.com/api/?name=demo"
	f := newFixture(map[string]profile.Snapshot{"demo": snap}, nil)

	res, err := f.svc.AnalyzeBatch(context.Background(), analysis.BatchCommand{Usernames: []string{"demo"}, Briefing: briefing})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Completed)
	assert.Zero(t, f.ocr.calls())
	assert.Zero(t, f.cache.puts)
	assert.Equal(t, []string{"demo"}, f.history.usernames())

	served := res.Results[0].Data.Profile.Posts
	require.Len(t, served, 3)
	for i, p := range served {
		require.NotNil(t, p.OCRText, "post %d", i)
		assert.Empty(t, *p.OCRText)
	}
	assert.Nil(t, snap.Posts[0].OCRText)
}

func TestAnalyzeBatch_Validation(t *testing.T) {
	tooMany := make([]string, 51)
	for i := range tooMany {
		tooMany[i] = "user" + strings.Repeat("x", i%3)
	}
	cases := []struct {
		name string
		cmd  analysis.BatchCommand
		want error
	}{
		{"empty", analysis.BatchCommand{Briefing: briefing}, analysis.ErrBatchSize},
		{"too many", analysis.BatchCommand{Usernames: tooMany, Briefing: briefing}, analysis.ErrBatchSize},
		{"bad username", analysis.BatchCommand{Usernames: []string{"ok", "not ok"}, Briefing: briefing}, analysis.ErrInvalidUsername},
		{"short briefing", analysis.BatchCommand{Usernames: []string{"ok"}, Briefing: "short"}, analysis.ErrBriefingTooShort},
		{"bad persona", analysis.BatchCommand{Usernames: []string{"ok"}, Briefing: briefing, TargetPersona: "vip"}, analysis.ErrInvalidPersona},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(nil, nil)
			_, err := f.svc.AnalyzeBatch(context.Background(), tc.cmd)
			require.Error(t, err)
			assert.True(t, analysis.IsValidation(err))
			assert.ErrorIs(t, err, tc.want)
			assert.Empty(t, f.scraper.calls)
		})
	}
}

func TestAnalyzeBatch_CancelledDuringPacing(t *testing.T) {
	f := newFixture(map[string]profile.Snapshot{
		"a": realSnapshot("a", nil),
		"b": realSnapshot("b", nil),
	}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	f.svc.OnAnalysis = func(bool, error) { cancel() }

	_, err := f.svc.AnalyzeBatch(ctx, analysis.BatchCommand{Usernames: []string{"a", "b"}, Briefing: briefing})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"a"}, f.scraper.calls)
}
