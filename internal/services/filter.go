package services

import (
	"strings"
	"time"

	"campusevents/internal/domain"
)

// MatchesFilter reports whether a canonical record passes all three filter
// predicates relative to now. Capacity-zero and invalid-date records are
// excluded upstream by Discoverable, so this stage never sees them from the
// catalog path.
func MatchesFilter(rec *domain.EventRecord, opts domain.FilterOptions, now time.Time) bool {
	return matchesSearch(rec, opts.Search) &&
		matchesCategory(rec.Category, opts.Category) &&
		matchesDateBucket(rec.Date, opts.DateBucket, now)
}

// Case-insensitive substring match against title and location.
func matchesSearch(rec *domain.EventRecord, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(rec.Title), needle) ||
		strings.Contains(strings.ToLower(rec.Location), needle)
}

// canonicalCategory lowercases a category and folds the legacy "tech" value
// into "technology"; the two have always referred to the same category.
func canonicalCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "tech" {
		return "technology"
	}
	return c
}

func matchesCategory(category, selector string) bool {
	if selector == "" || selector == domain.FilterAll {
		return true
	}
	return canonicalCategory(category) == canonicalCategory(selector)
}

func matchesDateBucket(date time.Time, bucket string, now time.Time) bool {
	if bucket == "" || bucket == domain.FilterAll {
		return true
	}
	day := truncateToDay(date)
	today := truncateToDay(now)
	switch bucket {
	case domain.DateToday:
		return day.Equal(today)
	case domain.DateWeek:
		start, end := weekBounds(today)
		return !day.Before(start) && !day.After(end)
	case domain.DateMonth:
		return day.Month() == today.Month() && day.Year() == today.Year()
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekBounds returns the Monday and Sunday of the week containing day.
func weekBounds(day time.Time) (time.Time, time.Time) {
	weekday := int(day.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday closes the week
	}
	start := day.AddDate(0, 0, -(weekday - 1))
	return start, start.AddDate(0, 0, 6)
}
