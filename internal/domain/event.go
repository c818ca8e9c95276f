package domain

import (
	"context"
	"time"
)

// RawEvent is an event payload exactly as the campus API returned it, before
// normalization. Field names and numeric types vary across backend versions,
// so the shape is kept loose until the normalizer has run.
type RawEvent map[string]any

// RegistrationStatus is the viewer's registration state for an event.
// Unknown means the server did not report a state (anonymous viewer).
type RegistrationStatus string

const (
	RegistrationUnknown   RegistrationStatus = "unknown"
	RegistrationNone      RegistrationStatus = "not_registered"
	RegistrationConfirmed RegistrationStatus = "registered"
)

// ScheduleItem is one entry of an event's agenda.
type ScheduleItem struct {
	Time     string `json:"time"`
	Activity string `json:"activity"`
}

// EventRecord is the canonical, post-normalization event shape.
// Date is the zero time when the source date could not be parsed; such
// records are kept for single-event lookups but never listed in the catalog.
// swagger:model EventRecord
type EventRecord struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Location        string             `json:"location"`
	Category        string             `json:"category"`
	OrganizerName   string             `json:"organizer_name"`
	Date            time.Time          `json:"date"`
	Time            string             `json:"time"`
	Capacity        int                `json:"max_capacity"`
	RegisteredCount int                `json:"registered_users_count"`
	Registration    RegistrationStatus `json:"is_registered"`
	Tags            []string           `json:"tags"`
	Schedule        []ScheduleItem     `json:"schedule"`
}

// AnnotatedEvent is an EventRecord enriched with the display-only fields the
// rendering layer needs: the derived attendance percentage and the viewer's
// effective registration state after the optimistic overlay has been applied.
// swagger:model AnnotatedEvent
type AnnotatedEvent struct {
	EventRecord
	AttendancePercent int `json:"attendance_percent"`
}

// EventInput is the payload for creating or editing an event.
type EventInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Location    string         `json:"location"`
	Category    string         `json:"category"`
	MaxCapacity int            `json:"max_capacity"`
	TargetYear  string         `json:"target_year,omitempty"`
	Department  string         `json:"department,omitempty"`
	Tags        []string       `json:"tags,omitempty"`
	Schedule    []ScheduleItem `json:"schedule,omitempty"`
}

// FeedbackInput is a viewer's feedback on an attended event.
type FeedbackInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Feedback is a stored feedback entry; Sentiment is assigned by the backend's
// sentiment model and merely rendered here.
type Feedback struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Sentiment string    `json:"sentiment"`
	CreatedAt time.Time `json:"created_at"`
}

// EventAPI is the consumed REST boundary for event resources. Implementations
// attach the viewer's bearer token when a live session exists and map HTTP
// failures to the sentinel errors in this package.
type EventAPI interface {
	ListEvents(ctx context.Context) ([]RawEvent, error)
	OrganizerEvents(ctx context.Context) ([]RawEvent, error)
	GetEvent(ctx context.Context, eventID string) (RawEvent, error)
	Register(ctx context.Context, eventID string) error
	Unregister(ctx context.Context, eventID string) error
	CreateEvent(ctx context.Context, in *EventInput) (RawEvent, error)
	UpdateEvent(ctx context.Context, eventID string, in *EventInput) (RawEvent, error)
	DeleteEvent(ctx context.Context, eventID string) error
	SubmitFeedback(ctx context.Context, eventID string, in *FeedbackInput) (*Feedback, error)
}
