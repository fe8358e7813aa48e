package profile

import (
	"fmt"
	"time"
)

// DateRange enum
type DateRange string

const (
	DateRangeAll     DateRange = "all"
	DateRangeWeek    DateRange = "week"
	DateRangeMonth   DateRange = "month"
	DateRange3Months DateRange = "3months"
)

// Filters narrow the post list that is served to the caller and the model.
// They are never applied to what gets cached.
type Filters struct {
	DateRange     DateRange `json:"dateRange"`
	MinEngagement int       `json:"minEngagement"`
}

// DefaultFilters matches an absent filter object.
func DefaultFilters() Filters {
	return Filters{DateRange: DateRangeAll}
}

// Validate checks enum membership and the engagement floor.
func (f Filters) Validate() error {
	switch f.DateRange {
	case "", DateRangeAll, DateRangeWeek, DateRangeMonth, DateRange3Months:
	default:
		return fmt.Errorf("invalid date range: %s (allowed: all, week, month, 3months)", f.DateRange)
	}
	if f.MinEngagement < 0 {
		return fmt.Errorf("minEngagement must be >= 0")
	}
	return nil
}

// Cutoff returns the oldest timestamp kept by the range, zero for "all".
func (f Filters) Cutoff(now time.Time) time.Time {
	switch f.DateRange {
	case DateRangeWeek:
		return now.AddDate(0, 0, -7)
	case DateRangeMonth:
		return now.AddDate(0, 0, -30)
	case DateRange3Months:
		return now.AddDate(0, 0, -90)
	default:
		return time.Time{}
	}
}

// ApplyFilters returns the posts that pass both predicates, preserving order.
// Posts without a timestamp only survive the "all" range. Missing likes count as 0.
// The input slice is not modified.
func ApplyFilters(posts []Post, f Filters, now time.Time) []Post {
	cutoff := f.Cutoff(now)
	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if !cutoff.IsZero() {
			if p.Timestamp == nil || p.Timestamp.Before(cutoff) {
				continue
			}
		}
		if p.LikeCount() < f.MinEngagement {
			continue
		}
		out = append(out, p)
	}
	return out
}
