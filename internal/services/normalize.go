package services

import (
	"fmt"
	"math"
	"time"

	"campusevents/internal/domain"
)

// Alias priority lists for numeric fields that drifted across backend
// versions. The first present, numeric, non-negative candidate wins.
var (
	capacityKeys   = []string{"max_capacity", "maxCapacity", "maxAttendees"}
	registeredKeys = []string{"registered_users_count", "attendees"}
)

// Normalize coerces a raw API payload into the canonical EventRecord.
// Missing optional fields resolve to documented defaults and never raise an
// error; the only unusable record is one without an id, in which case ok is
// false and the record must be dropped. Normalize is pure and idempotent.
func Normalize(raw domain.RawEvent) (rec *domain.EventRecord, ok bool) {
	id := pickString(raw, "id")
	if id == "" {
		return nil, false
	}

	rec = &domain.EventRecord{
		ID:              id,
		Title:           pickString(raw, "title"),
		Description:     pickString(raw, "description"),
		Location:        pickString(raw, "location"),
		Category:        pickString(raw, "category"),
		OrganizerName:   pickString(raw, "organizer_name"),
		Time:            pickString(raw, "time"),
		Capacity:        pickInt(raw, capacityKeys...),
		RegisteredCount: pickInt(raw, registeredKeys...),
		Registration:    pickRegistration(raw),
		Tags:            pickStrings(raw, "tags"),
		Schedule:        pickSchedule(raw),
	}
	rec.Date, _ = ParseEventDate(pickString(raw, "date"))
	return rec, true
}

// Discoverable reports whether a record may appear in catalog listings.
// Zero or unknown capacity means the event is incompletely configured and is
// hidden by policy; an unparseable date is treated as an invalid record.
func Discoverable(rec *domain.EventRecord) bool {
	return rec.Capacity > 0 && !rec.Date.IsZero()
}

// AttendancePercent derives a 0-100 percentage from a registered-count and
// capacity pair. Zero or unknown capacity yields 0; over-capacity data is
// clamped so progress bars never overflow.
func AttendancePercent(registered, capacity int) int {
	if capacity <= 0 || registered <= 0 {
		return 0
	}
	pct := int(math.Round(float64(registered) / float64(capacity) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// Formats the backend has been observed to emit for event dates.
var eventDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseEventDate parses an event date and zeroes the time-of-day so all
// calendar comparisons work on whole days.
func ParseEventDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range eventDateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

func pickString(raw domain.RawEvent, keys ...string) string {
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			// Numeric ids arrive as JSON numbers; render them as integers.
			if v == math.Trunc(v) {
				return fmt.Sprintf("%d", int64(v))
			}
			return fmt.Sprintf("%v", v)
		case int:
			return fmt.Sprintf("%d", v)
		case time.Time:
			return v.Format("2006-01-02")
		}
	}
	return ""
}

// pickInt returns the first numeric, non-negative candidate among keys.
// Non-numeric and negative values are treated as absent; absence resolves
// to 0.
func pickInt(raw domain.RawEvent, keys ...string) int {
	for _, k := range keys {
		var n int
		switch v := raw[k].(type) {
		case float64:
			n = int(math.Round(v))
		case int:
			n = v
		default:
			continue
		}
		if n < 0 {
			continue
		}
		return n
	}
	return 0
}

func pickRegistration(raw domain.RawEvent) domain.RegistrationStatus {
	switch v := raw["is_registered"].(type) {
	case bool:
		if v {
			return domain.RegistrationConfirmed
		}
		return domain.RegistrationNone
	case string:
		// Already-canonical records carry the status string.
		switch domain.RegistrationStatus(v) {
		case domain.RegistrationConfirmed, domain.RegistrationNone:
			return domain.RegistrationStatus(v)
		}
	}
	return domain.RegistrationUnknown
}

func pickStrings(raw domain.RawEvent, key string) []string {
	switch v := raw[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func pickSchedule(raw domain.RawEvent) []domain.ScheduleItem {
	items, ok := raw["schedule"].([]any)
	if !ok {
		if typed, ok := raw["schedule"].([]domain.ScheduleItem); ok {
			return typed
		}
		return nil
	}
	out := make([]domain.ScheduleItem, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := domain.ScheduleItem{}
		if s, ok := m["time"].(string); ok {
			entry.Time = s
		}
		if s, ok := m["activity"].(string); ok {
			entry.Activity = s
		}
		out = append(out, entry)
	}
	return out
}
