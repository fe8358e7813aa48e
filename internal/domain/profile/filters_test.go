package profile

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyFilters(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := []Post{
		{Caption: "new", Likes: Int(50), Timestamp: Time(now.AddDate(0, 0, -2))},
		{Caption: "month", Likes: Int(5), Timestamp: Time(now.AddDate(0, 0, -20))},
		{Caption: "old", Likes: Int(500), Timestamp: Time(now.AddDate(0, 0, -100))},
		{Caption: "undated", Likes: Int(80)},
		{Caption: "hidden"},
	}

	captions := func(ps []Post) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.Caption)
		}
		return out
	}

	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"all", DefaultFilters(), []string{"new", "month", "old", "undated", "hidden"}},
		{"week", Filters{DateRange: DateRangeWeek}, []string{"new"}},
		{"month", Filters{DateRange: DateRangeMonth}, []string{"new", "month"}},
		{"3months with floor", Filters{DateRange: DateRange3Months, MinEngagement: 10}, []string{"new"}},
		{"floor only", Filters{DateRange: DateRangeAll, MinEngagement: 60}, []string{"old", "undated"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := captions(ApplyFilters(posts, tt.f, now))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ApplyFilters mismatch (-want +got):\n%s", diff)
			}
		})
	}
	assert.Len(t, posts, 5)
}

func TestApplyFilters_Idempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := []Post{
		{Caption: "a", Likes: Int(3), Timestamp: Time(now.AddDate(0, 0, -1))},
		{Caption: "b", Likes: Int(120), Timestamp: Time(now.AddDate(0, 0, -8))},
		{Caption: "c", Timestamp: Time(now.AddDate(0, 0, -45))},
		{Caption: "d", Likes: Int(40)},
		{Caption: "e"},
		{Caption: "f", Likes: Int(0), Timestamp: Time(now.AddDate(0, 0, -400))},
	}

	for _, dr := range []DateRange{DateRangeAll, DateRangeWeek, DateRangeMonth, DateRange3Months} {
		for _, floor := range []int{0, 1, 10, 100, 1000} {
			f := Filters{DateRange: dr, MinEngagement: floor}
			once := ApplyFilters(posts, f, now)
			twice := ApplyFilters(once, f, now)
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("%s/%d not idempotent (-once +twice):\n%s", dr, floor, diff)
			}
		}
	}
}

func TestFiltersValidate(t *testing.T) {
	require.NoError(t, Filters{}.Validate())
	require.NoError(t, Filters{DateRange: DateRange3Months, MinEngagement: 3}.Validate())
	assert.Error(t, Filters{DateRange: "year"}.Validate())
	assert.Error(t, Filters{MinEngagement: -1}.Validate())
}

func TestValidateUsername(t *testing.T) {
	for _, ok := range []string{"ana", "a.b_c", "Z9"} {
		assert.NoError(t, ValidateUsername(ok), ok)
	}
	for _, bad := range []string{"", "ana silva", "ana-silva", "@ana"} {
		assert.ErrorIs(t, ValidateUsername(bad), ErrInvalidUsername, bad)
	}
}

func TestIsSynthetic(t *testing.T) {
	assert.True(t, IsSynthetic(Profile{ProfilePicURL: "https://ui-avatars.com/api/?name=ana"}))
	assert.False(t, IsSynthetic(Profile{ProfilePicURL: "https://cdn.example.com/a.jpg"}))
	assert.True(t, IsPlaceholderImage("https://picsum.photos/seed/x/400"))
}
