package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"campusevents/internal/domain"
	"campusevents/monitoring"
)

// Client talks to the campus event API. Every outgoing request carries the
// viewer's bearer token when a live one is stored; a 401 response clears the
// stored session so the viewer degrades to anonymous instead of looping on a
// dead token.
type Client struct {
	baseURL   string
	hc        *http.Client
	sessions  domain.SessionStore
	inspector domain.TokenInspector
	logger    *slog.Logger
	now       func() time.Time
}

// New returns a Client for the API rooted at baseURL (e.g.
// "http://localhost:8000/api"). A nil http.Client falls back to
// http.DefaultClient.
func New(baseURL string, hc *http.Client, sessions domain.SessionStore, inspector domain.TokenInspector, logger *slog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		hc:        hc,
		sessions:  sessions,
		inspector: inspector,
		logger:    logger,
		now:       time.Now,
	}
}

// errorBody is the error payload shape the backend uses; detail is the usual
// field, error appears on a few older endpoints.
type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

// do performs one request. body (when non-nil) is JSON-encoded; a 2xx
// response is decoded into out (when non-nil). Failures always come back as
// a *domain.RemoteError wrapping a sentinel.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token := c.bearer(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		monitoring.UpstreamRequest(method, "network_error")
		return &domain.RemoteError{
			Detail: "could not connect to the event service",
			Err:    domain.ErrUnavailable,
		}
	}
	defer resp.Body.Close()
	monitoring.UpstreamRequest(method, statusClass(resp.StatusCode))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(resp.Body).Decode(&eb)
	detail := eb.Detail
	if detail == "" {
		detail = eb.Error
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The token was rejected; drop the session so the next request
		// goes out anonymous.
		if cerr := c.sessions.Clear(ctx); cerr != nil {
			c.logger.Warn("clear session after 401", "err", cerr)
		}
	}

	return &domain.RemoteError{
		StatusCode: resp.StatusCode,
		Detail:     detail,
		Err:        sentinelFor(resp.StatusCode),
	}
}

// bearer returns the stored access token, or "" when the viewer is anonymous
// or the token has already expired locally.
func (c *Client) bearer(ctx context.Context) string {
	sess, err := c.sessions.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			c.logger.Warn("read session", "err", err)
		}
		return ""
	}
	if sess.AccessToken == "" {
		return ""
	}
	if c.inspector != nil {
		if info, err := c.inspector.Inspect(sess.AccessToken); err == nil && info.Expired(c.now()) {
			return ""
		}
	}
	return sess.AccessToken
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrAlreadyRegistered
	}
	if status >= 500 {
		return domain.ErrUnavailable
	}
	return domain.ErrInvalidInput
}

func statusClass(status int) string {
	switch {
	case status < 300:
		return "2xx"
	case status < 400:
		return "3xx"
	case status < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
