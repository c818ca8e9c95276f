package domain

import "context"

// Filter selector values. FilterAll is shared by the category and date
// selectors; the date buckets are calendar ranges relative to "now".
const (
	FilterAll = "all"
	DateToday = "today"
	DateWeek  = "week"
	DateMonth = "month"
)

// FilterOptions narrows the catalog. All three predicates are conjunctive.
type FilterOptions struct {
	Search     string
	Category   string
	DateBucket string
}

// CatalogService owns the canonical event list and the optimistic
// registration overlay. Both are mutated only through these operations.
type CatalogService interface {
	// Refresh runs one fetch cycle: pull the full list from the REST
	// boundary, normalize, and store. On failure the catalog is emptied and
	// a typed error returned. Safe to call concurrently; the most recently
	// resolved response wins.
	Refresh(ctx context.Context) error

	// Catalog returns the filtered, annotated catalog in server order.
	// The first call triggers a fetch if none has completed yet.
	Catalog(ctx context.Context, opts FilterOptions) ([]*AnnotatedEvent, error)

	// GetEvent fetches and annotates a single event, including events that
	// are hidden from the listing (zero capacity, unparseable date).
	GetEvent(ctx context.Context, eventID string) (*AnnotatedEvent, error)

	// OrganizerEvents lists the viewer's own events for the management
	// view. Incompletely configured events stay visible here so their
	// owner can finish or delete them.
	OrganizerEvents(ctx context.Context) ([]*AnnotatedEvent, error)

	// Register optimistically marks the event as registered, calls the
	// registration endpoint, and reconciles: 2xx and 409 keep the overlay
	// and trigger a refetch, anything else rolls back. No automatic retry.
	Register(ctx context.Context, eventID string) error

	Unregister(ctx context.Context, eventID string) error

	SubmitFeedback(ctx context.Context, eventID string, in *FeedbackInput) (*Feedback, error)

	CreateEvent(ctx context.Context, in *EventInput) (*EventRecord, error)
	UpdateEvent(ctx context.Context, eventID string, in *EventInput) (*EventRecord, error)
	DeleteEvent(ctx context.Context, eventID string) error
}
