package services

import (
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
)

// Wednesday 2025-04-16.
var filterNow = time.Date(2025, 4, 16, 15, 30, 0, 0, time.Local)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestMatchesFilter_Category(t *testing.T) {
	tests := []struct {
		name     string
		category string
		selector string
		want     bool
	}{
		{"all matches everything", "Sports", domain.FilterAll, true},
		{"empty selector matches everything", "Sports", "", true},
		{"exact match", "Technology", "Technology", true},
		{"case-insensitive", "technology", "TECHNOLOGY", true},
		{"tech record matches technology selector", "Tech", "Technology", true},
		{"technology record matches tech selector", "Technology", "tech", true},
		{"mismatch", "Sports", "Technology", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &domain.EventRecord{ID: "1", Category: tt.category, Date: day(2025, 4, 16)}
			got := MatchesFilter(rec, domain.FilterOptions{Category: tt.selector}, filterNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFilter_Search(t *testing.T) {
	rec := &domain.EventRecord{
		ID:       "1",
		Title:    "AI Hackathon 2025",
		Location: "Engineering Building",
		Date:     day(2025, 4, 16),
	}

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"empty matches", "", true},
		{"title substring", "hackathon", true},
		{"location substring", "engineering", true},
		{"case-insensitive", "HACK", true},
		{"no match", "concert", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MatchesFilter(rec, domain.FilterOptions{Search: tt.search}, filterNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFilter_DateBuckets(t *testing.T) {
	tests := []struct {
		name   string
		date   time.Time
		bucket string
		want   bool
	}{
		{"today matches", day(2025, 4, 16), domain.DateToday, true},
		{"tomorrow is not today", day(2025, 4, 17), domain.DateToday, false},
		{"yesterday is not today", day(2025, 4, 15), domain.DateToday, false},

		// Week of Wednesday 2025-04-16 runs Monday 14th through Sunday 20th.
		{"monday opens the week", day(2025, 4, 14), domain.DateWeek, true},
		{"sunday closes the week", day(2025, 4, 20), domain.DateWeek, true},
		{"previous sunday is out", day(2025, 4, 13), domain.DateWeek, false},
		{"next monday is out", day(2025, 4, 21), domain.DateWeek, false},

		{"first of month", day(2025, 4, 1), domain.DateMonth, true},
		{"last of month", day(2025, 4, 30), domain.DateMonth, true},
		{"next month is out", day(2025, 5, 1), domain.DateMonth, false},
		{"same month last year is out", day(2024, 4, 16), domain.DateMonth, false},

		{"all passes any date", day(1999, 1, 1), domain.FilterAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &domain.EventRecord{ID: "1", Date: tt.date}
			got := MatchesFilter(rec, domain.FilterOptions{DateBucket: tt.bucket}, filterNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesFilter_WeekBucketOnSunday(t *testing.T) {
	// When today is Sunday the week must not slide forward.
	sunday := time.Date(2025, 4, 20, 10, 0, 0, 0, time.Local)
	rec := &domain.EventRecord{ID: "1", Date: day(2025, 4, 14)} // that week's Monday

	assert.True(t, MatchesFilter(rec, domain.FilterOptions{DateBucket: domain.DateWeek}, sunday))
}

func TestMatchesFilter_Conjunction(t *testing.T) {
	rec := &domain.EventRecord{
		ID:       "2",
		Title:    "Robotics Workshop",
		Location: "Lab 4",
		Category: "tech",
		Date:     day(2025, 4, 16),
	}

	opts := domain.FilterOptions{
		Search:     "robotics",
		Category:   "Technology",
		DateBucket: domain.DateToday,
	}
	assert.True(t, MatchesFilter(rec, opts, filterNow))

	// Any single failing predicate rejects the record.
	opts.Search = "concert"
	assert.False(t, MatchesFilter(rec, opts, filterNow))
}
