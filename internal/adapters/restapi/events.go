package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"campusevents/internal/domain"
)

// ListEvents pulls the full public event list. The payload is returned raw;
// normalization is the catalog service's job.
func (c *Client) ListEvents(ctx context.Context) ([]domain.RawEvent, error) {
	var raws []domain.RawEvent
	if err := c.do(ctx, http.MethodGet, "/events/", nil, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

// OrganizerEvents pulls the viewer's own events; the backend scopes the
// list to the bearer token's account.
func (c *Client) OrganizerEvents(ctx context.Context) ([]domain.RawEvent, error) {
	var raws []domain.RawEvent
	if err := c.do(ctx, http.MethodGet, "/organizer/events/", nil, &raws); err != nil {
		return nil, err
	}
	return raws, nil
}

func (c *Client) GetEvent(ctx context.Context, eventID string) (domain.RawEvent, error) {
	var raw domain.RawEvent
	if err := c.do(ctx, http.MethodGet, eventPath(eventID, ""), nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) Register(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodPost, eventPath(eventID, "register"), nil, nil)
}

func (c *Client) Unregister(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodPost, eventPath(eventID, "unregister"), nil, nil)
}

func (c *Client) CreateEvent(ctx context.Context, in *domain.EventInput) (domain.RawEvent, error) {
	var raw domain.RawEvent
	if err := c.do(ctx, http.MethodPost, "/events/create/", in, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) UpdateEvent(ctx context.Context, eventID string, in *domain.EventInput) (domain.RawEvent, error) {
	var raw domain.RawEvent
	if err := c.do(ctx, http.MethodPatch, eventPath(eventID, ""), in, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.do(ctx, http.MethodDelete, eventPath(eventID, ""), nil, nil)
}

func (c *Client) SubmitFeedback(ctx context.Context, eventID string, in *domain.FeedbackInput) (*domain.Feedback, error) {
	var fb domain.Feedback
	if err := c.do(ctx, http.MethodPost, eventPath(eventID, "feedback"), in, &fb); err != nil {
		return nil, err
	}
	fb.EventID = eventID
	return &fb, nil
}

func eventPath(eventID, action string) string {
	p := fmt.Sprintf("/events/%s/", url.PathEscape(eventID))
	if action != "" {
		p += action + "/"
	}
	return p
}
