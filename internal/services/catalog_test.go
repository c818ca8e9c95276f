package services

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEventAPI is an in-memory EventAPI for tests.
type fakeEventAPI struct {
	mu sync.Mutex

	events          []domain.RawEvent
	organizerEvents []domain.RawEvent

	listErr       error
	organizerErr  error
	listCalls     int
	getErr        error
	registerErr   error
	unregisterErr error
	feedbackErr   error

	registered   []string
	unregistered []string
}

func (f *fakeEventAPI) ListEvents(ctx context.Context) ([]domain.RawEvent, error) {
	// Mirror the real client: a dead context never reaches the wire.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeEventAPI) OrganizerEvents(ctx context.Context) ([]domain.RawEvent, error) {
	if f.organizerErr != nil {
		return nil, f.organizerErr
	}
	return f.organizerEvents, nil
}

func (f *fakeEventAPI) GetEvent(ctx context.Context, eventID string) (domain.RawEvent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, raw := range f.events {
		if id, _ := raw["id"].(string); id == eventID {
			return raw, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventAPI) Register(ctx context.Context, eventID string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, eventID)
	return nil
}

func (f *fakeEventAPI) Unregister(ctx context.Context, eventID string) error {
	if f.unregisterErr != nil {
		return f.unregisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = append(f.unregistered, eventID)
	return nil
}

func (f *fakeEventAPI) CreateEvent(ctx context.Context, in *domain.EventInput) (domain.RawEvent, error) {
	raw := domain.RawEvent{"id": "new", "title": in.Title, "max_capacity": in.MaxCapacity, "date": in.Date}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, raw)
	return raw, nil
}

func (f *fakeEventAPI) UpdateEvent(ctx context.Context, eventID string, in *domain.EventInput) (domain.RawEvent, error) {
	return domain.RawEvent{"id": eventID, "title": in.Title, "max_capacity": in.MaxCapacity, "date": in.Date}, nil
}

func (f *fakeEventAPI) DeleteEvent(ctx context.Context, eventID string) error {
	return nil
}

func (f *fakeEventAPI) SubmitFeedback(ctx context.Context, eventID string, in *domain.FeedbackInput) (*domain.Feedback, error) {
	if f.feedbackErr != nil {
		return nil, f.feedbackErr
	}
	return &domain.Feedback{ID: "fb-1", EventID: eventID, Rating: in.Rating, Comment: in.Comment, Sentiment: "positive"}, nil
}

// fakeSessionStore is an in-memory SessionStore for tests.
type fakeSessionStore struct {
	mu   sync.Mutex
	sess *domain.Session
	err  error
}

func (f *fakeSessionStore) Get(ctx context.Context) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.sess == nil {
		return nil, domain.ErrNotFound
	}
	return f.sess, nil
}

func (f *fakeSessionStore) Put(ctx context.Context, sess *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess = sess
	return nil
}

func (f *fakeSessionStore) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sess = nil
	return nil
}

func testSession() *domain.Session {
	return &domain.Session{
		AccessToken: "token",
		User:        &domain.User{ID: "7", Email: "alice@uni.edu", Role: domain.RoleStudent},
	}
}

func newTestCatalog(api domain.EventAPI, sessions domain.SessionStore) *catalogService {
	svc := NewCatalogService(api, sessions, slog.Default(), 2*time.Second).(*catalogService)
	svc.now = func() time.Time { return filterNow }
	return svc
}

func discoverableRaw(id, title string, capacity, registered int) domain.RawEvent {
	return domain.RawEvent{
		"id":                     id,
		"title":                  title,
		"date":                   "2025-04-16",
		"max_capacity":           float64(capacity),
		"registered_users_count": float64(registered),
	}
}

func TestCatalog_RefreshFiltersUndiscoverable(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{
		discoverableRaw("1", "Career Fair", 100, 50),
		discoverableRaw("2", "Robotics Demo", 0, 0),                 // capacity zero, hidden
		{"id": "3", "title": "No Date", "max_capacity": float64(5)}, // unparseable date, hidden
		{"title": "No ID", "max_capacity": float64(5)},              // dropped outright
	}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	require.NoError(t, svc.Refresh(ctx))

	events, err := svc.Catalog(ctx, domain.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, 50, events[0].AttendancePercent)
}

func TestCatalog_LazyFirstFetch(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	events, err := svc.Catalog(ctx, domain.FilterOptions{})
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, api.listCalls)

	// Subsequent reads serve the snapshot without refetching.
	_, err = svc.Catalog(ctx, domain.FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, api.listCalls)
}

func TestCatalog_FetchFailureFailsSoft(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{listErr: domain.ErrUnavailable}
	svc := newTestCatalog(api, &fakeSessionStore{})

	events, err := svc.Catalog(ctx, domain.FilterOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestCatalog_FetchFailureEmptiesPreviousSnapshot(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	svc := newTestCatalog(api, &fakeSessionStore{})
	require.NoError(t, svc.Refresh(ctx))

	api.listErr = domain.ErrUnavailable
	require.Error(t, svc.Refresh(ctx))

	events, err := svc.Catalog(ctx, domain.FilterOptions{})
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestCatalog_AnonymousViewerSeesUnknown(t *testing.T) {
	ctx := context.Background()
	raw := discoverableRaw("1", "Career Fair", 100, 50)
	raw["is_registered"] = true // backend noise; anonymous view must not trust it
	api := &fakeEventAPI{events: []domain.RawEvent{raw}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	events, err := svc.Catalog(ctx, domain.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.RegistrationUnknown, events[0].Registration)
}

func TestCatalog_Filtering(t *testing.T) {
	ctx := context.Background()
	tech := discoverableRaw("1", "AI Hackathon", 100, 10)
	tech["category"] = "tech"
	sports := discoverableRaw("2", "Intramural Finals", 200, 100)
	sports["category"] = "Sports"
	api := &fakeEventAPI{events: []domain.RawEvent{tech, sports}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	events, err := svc.Catalog(ctx, domain.FilterOptions{Category: "Technology"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ID)

	events, err = svc.Catalog(ctx, domain.FilterOptions{Search: "finals"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "2", events[0].ID)
}

func TestRegister_OptimisticSuccess(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)

	require.NoError(t, svc.Register(ctx, "1"))
	assert.Equal(t, []string{"1"}, api.registered)

	// The successful refetch carried server truth, so the overlay is gone
	// but the viewer still reads as registered if the server says so.
	svc.mu.Lock()
	assert.Empty(t, svc.overlay)
	svc.mu.Unlock()
}

func TestRegister_ConflictTreatedAsSuccess(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{
		events:      []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 100)},
		registerErr: domain.ErrAlreadyRegistered,
	}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)

	require.NoError(t, svc.Register(ctx, "1"))
}

func TestRegister_FailureRollsBackOverlay(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{
		events:      []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)},
		registerErr: domain.ErrUnavailable,
	}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)

	err := svc.Register(ctx, "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	svc.mu.Lock()
	_, present := svc.overlay["1"]
	svc.mu.Unlock()
	assert.False(t, present)
}

func TestRegister_AnonymousViewerRejected(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	err := svc.Register(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, api.registered)

	svc.mu.Lock()
	assert.Empty(t, svc.overlay)
	svc.mu.Unlock()
}

func TestRegister_OverlayBridgesFailedRefetch(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)
	require.NoError(t, svc.Refresh(ctx))

	// Registration write lands but the follow-up refetch fails; the overlay
	// must keep the viewer's intent visible until a refetch succeeds.
	api.mu.Lock()
	api.listErr = domain.ErrUnavailable
	api.mu.Unlock()

	require.NoError(t, svc.Register(ctx, "1"))

	svc.mu.Lock()
	assert.True(t, svc.overlay["1"])
	svc.mu.Unlock()
}

func TestUnregister(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)

	require.NoError(t, svc.Unregister(ctx, "1"))
	assert.Equal(t, []string{"1"}, api.unregistered)

	err := newTestCatalog(api, &fakeSessionStore{}).Unregister(ctx, "1")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetEvent(t *testing.T) {
	ctx := context.Background()
	// Capacity-zero events stay reachable by direct lookup.
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("2", "Robotics Demo", 0, 0)}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	ev, err := svc.GetEvent(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Robotics Demo", ev.Title)
	assert.Zero(t, ev.AttendancePercent)

	_, err = svc.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitFeedback_Validation(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)

	tests := []struct {
		name  string
		in    *domain.FeedbackInput
		errIs error
	}{
		{"rating too low", &domain.FeedbackInput{Rating: 0, Comment: "ok"}, domain.ErrInvalidInput},
		{"rating too high", &domain.FeedbackInput{Rating: 6, Comment: "ok"}, domain.ErrInvalidInput},
		{"empty comment", &domain.FeedbackInput{Rating: 4}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SubmitFeedback(ctx, "1", tt.in)
			assert.ErrorIs(t, err, tt.errIs)
		})
	}

	fb, err := svc.SubmitFeedback(ctx, "1", &domain.FeedbackInput{Rating: 5, Comment: "great event"})
	require.NoError(t, err)
	assert.Equal(t, "1", fb.EventID)
	assert.Equal(t, "positive", fb.Sentiment)
}

func TestCreateEvent_RefreshesCatalog(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)
	require.NoError(t, svc.Refresh(ctx))
	calls := api.listCalls

	rec, err := svc.CreateEvent(ctx, &domain.EventInput{Title: "New Fair", MaxCapacity: 40, Date: "2025-04-16"})
	require.NoError(t, err)
	assert.Equal(t, "new", rec.ID)
	assert.Greater(t, api.listCalls, calls)

	_, err = svc.CreateEvent(ctx, &domain.EventInput{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRefresh_DiscardsStaleResult(t *testing.T) {
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := svc.Refresh(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRefresh_CanceledCallerKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	api := &fakeEventAPI{events: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	svc := newTestCatalog(api, &fakeSessionStore{})
	require.NoError(t, svc.Refresh(ctx))

	// One viewer disconnecting mid-refetch must not wipe the catalog for
	// everyone else.
	canceled, cancel := context.WithCancel(ctx)
	cancel()
	err := svc.Refresh(canceled)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	events, err := svc.Catalog(ctx, domain.FilterOptions{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "1", events[0].ID)
}

func TestOrganizerEvents(t *testing.T) {
	ctx := context.Background()
	draft := domain.RawEvent{"id": "7", "title": "Draft Mixer", "max_capacity": float64(0)}
	api := &fakeEventAPI{organizerEvents: []domain.RawEvent{
		discoverableRaw("1", "Career Fair", 100, 50),
		draft, // hidden from the public catalog, visible to its owner
	}}
	store := &fakeSessionStore{sess: testSession()}
	svc := newTestCatalog(api, store)

	events, err := svc.OrganizerEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Draft Mixer", events[1].Title)
	assert.Zero(t, events[1].AttendancePercent)
}

func TestOrganizerEvents_AnonymousRejected(t *testing.T) {
	api := &fakeEventAPI{organizerEvents: []domain.RawEvent{discoverableRaw("1", "Career Fair", 100, 50)}}
	svc := newTestCatalog(api, &fakeSessionStore{})

	_, err := svc.OrganizerEvents(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
