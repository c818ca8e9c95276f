package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"campusevents/internal/domain"
	"campusevents/monitoring"
)

type catalogService struct {
	api      domain.EventAPI
	sessions domain.SessionStore
	logger   *slog.Logger

	contextTimeout time.Duration
	now            func() time.Time

	// records and overlay are the only shared mutable state; both are
	// mutated exclusively through Refresh/Register/Unregister under mu.
	mu      sync.Mutex
	records []*domain.EventRecord
	overlay map[string]bool
	fetched bool
}

// NewCatalogService creates a CatalogService over the given REST boundary
// and session store.
func NewCatalogService(api domain.EventAPI, sessions domain.SessionStore, logger *slog.Logger, timeout time.Duration) domain.CatalogService {
	return &catalogService{
		api:            api,
		sessions:       sessions,
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		overlay:        make(map[string]bool),
	}
}

func (s *catalogService) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raws, err := s.api.ListEvents(ctx)
	if err != nil {
		// A canceled caller tells us nothing about the backend; keep the
		// snapshot for the views that are still live.
		if ctx.Err() != nil {
			return fmt.Errorf("fetch catalog: %w", err)
		}
		monitoring.CatalogFetch("error")
		s.mu.Lock()
		s.records = nil
		s.fetched = true
		s.mu.Unlock()
		monitoring.SetCatalogSize(0)
		return fmt.Errorf("fetch catalog: %w", err)
	}
	// The view that asked for this refresh may be gone by the time the
	// response resolves; never apply a stale result.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	records := make([]*domain.EventRecord, 0, len(raws))
	for _, raw := range raws {
		rec, ok := Normalize(raw)
		if !ok {
			continue // no id, unusable
		}
		if !Discoverable(rec) {
			continue
		}
		records = append(records, rec)
	}

	authenticated := s.viewerSession(ctx) != nil

	s.mu.Lock()
	s.records = records
	s.fetched = true
	if authenticated {
		// Server truth supersedes the optimistic overlay.
		s.overlay = make(map[string]bool)
	}
	s.mu.Unlock()

	monitoring.CatalogFetch("ok")
	monitoring.SetCatalogSize(len(records))
	return nil
}

func (s *catalogService) Catalog(ctx context.Context, opts domain.FilterOptions) ([]*domain.AnnotatedEvent, error) {
	s.mu.Lock()
	fetched := s.fetched
	s.mu.Unlock()
	if !fetched {
		if err := s.Refresh(ctx); err != nil {
			// Fail soft: an empty catalog plus the surfaced error.
			return []*domain.AnnotatedEvent{}, err
		}
	}

	sess := s.viewerSession(ctx)

	s.mu.Lock()
	records := make([]*domain.EventRecord, len(s.records))
	copy(records, s.records)
	overlay := make(map[string]bool, len(s.overlay))
	for id, v := range s.overlay {
		overlay[id] = v
	}
	s.mu.Unlock()

	now := s.now()
	out := make([]*domain.AnnotatedEvent, 0, len(records))
	for _, rec := range records {
		if !MatchesFilter(rec, opts, now) {
			continue
		}
		out = append(out, annotate(rec, sess, overlay))
	}
	return out, nil
}

func (s *catalogService) GetEvent(ctx context.Context, eventID string) (*domain.AnnotatedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raw, err := s.api.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	rec, ok := Normalize(raw)
	if !ok {
		return nil, domain.ErrNotFound
	}

	sess := s.viewerSession(ctx)
	s.mu.Lock()
	registered := s.overlay[rec.ID]
	s.mu.Unlock()
	return annotate(rec, sess, map[string]bool{rec.ID: registered}), nil
}

func (s *catalogService) OrganizerEvents(ctx context.Context) ([]*domain.AnnotatedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess := s.viewerSession(ctx)
	if sess == nil {
		return nil, domain.ErrUnauthorized
	}
	raws, err := s.api.OrganizerEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizer events: %w", err)
	}

	s.mu.Lock()
	overlay := make(map[string]bool, len(s.overlay))
	for id, v := range s.overlay {
		overlay[id] = v
	}
	s.mu.Unlock()

	// The management view keeps incompletely configured events visible so
	// their owner can finish or delete them; no Discoverable filter here.
	out := make([]*domain.AnnotatedEvent, 0, len(raws))
	for _, raw := range raws {
		rec, ok := Normalize(raw)
		if !ok {
			continue
		}
		out = append(out, annotate(rec, sess, overlay))
	}
	return out, nil
}

func (s *catalogService) Register(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Optimistic: flip the overlay before the network call resolves.
	s.setOverlay(eventID, true)

	if s.viewerSession(ctx) == nil {
		s.clearOverlay(eventID)
		return domain.ErrUnauthorized
	}

	err := s.api.Register(ctx, eventID)
	switch {
	case err == nil, errors.Is(err, domain.ErrAlreadyRegistered):
		// 409 means the desired end state already holds; treat as success.
		monitoring.Registration("ok")
		if rerr := s.Refresh(ctx); rerr != nil {
			s.logger.Warn("refetch after registration failed", "event_id", eventID, "err", rerr)
		}
		return nil
	default:
		s.clearOverlay(eventID)
		monitoring.Registration("error")
		return fmt.Errorf("register event: %w", err)
	}
}

func (s *catalogService) Unregister(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.viewerSession(ctx) == nil {
		return domain.ErrUnauthorized
	}
	if err := s.api.Unregister(ctx, eventID); err != nil {
		return fmt.Errorf("unregister event: %w", err)
	}
	s.clearOverlay(eventID)
	if rerr := s.Refresh(ctx); rerr != nil {
		s.logger.Warn("refetch after unregistration failed", "event_id", eventID, "err", rerr)
	}
	return nil
}

func (s *catalogService) SubmitFeedback(ctx context.Context, eventID string, in *domain.FeedbackInput) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	if in.Comment == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.viewerSession(ctx) == nil {
		return nil, domain.ErrUnauthorized
	}
	fb, err := s.api.SubmitFeedback(ctx, eventID, in)
	if err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}
	return fb, nil
}

func (s *catalogService) CreateEvent(ctx context.Context, in *domain.EventInput) (*domain.EventRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.Title == "" {
		return nil, domain.ErrInvalidInput
	}
	raw, err := s.api.CreateEvent(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	rec, _ := Normalize(raw)
	if rerr := s.Refresh(ctx); rerr != nil {
		s.logger.Warn("refetch after create failed", "err", rerr)
	}
	return rec, nil
}

func (s *catalogService) UpdateEvent(ctx context.Context, eventID string, in *domain.EventInput) (*domain.EventRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raw, err := s.api.UpdateEvent(ctx, eventID, in)
	if err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	rec, _ := Normalize(raw)
	if rerr := s.Refresh(ctx); rerr != nil {
		s.logger.Warn("refetch after update failed", "event_id", eventID, "err", rerr)
	}
	return rec, nil
}

func (s *catalogService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.api.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if rerr := s.Refresh(ctx); rerr != nil {
		s.logger.Warn("refetch after delete failed", "event_id", eventID, "err", rerr)
	}
	return nil
}

// viewerSession returns the stored session, or nil for an anonymous viewer.
func (s *catalogService) viewerSession(ctx context.Context) *domain.Session {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("read session", "err", err)
		}
		return nil
	}
	if sess.AccessToken == "" {
		return nil
	}
	return sess
}

func (s *catalogService) setOverlay(eventID string, v bool) {
	s.mu.Lock()
	s.overlay[eventID] = v
	s.mu.Unlock()
}

func (s *catalogService) clearOverlay(eventID string) {
	s.mu.Lock()
	delete(s.overlay, eventID)
	s.mu.Unlock()
}

// annotate derives the display fields for one record. An anonymous viewer
// always sees Unknown; the overlay bridges the gap between a registration
// write and the next successful refetch.
func annotate(rec *domain.EventRecord, sess *domain.Session, overlay map[string]bool) *domain.AnnotatedEvent {
	out := &domain.AnnotatedEvent{
		EventRecord:       *rec,
		AttendancePercent: AttendancePercent(rec.RegisteredCount, rec.Capacity),
	}
	if sess == nil {
		out.Registration = domain.RegistrationUnknown
	} else if overlay[rec.ID] {
		out.Registration = domain.RegistrationConfirmed
	}
	return out
}
