package domain

import (
	"context"
	"time"
)

// Session is the viewer's credentials as issued by the campus API: the
// bearer tokens plus the cached user object. There is a single session per
// gateway instance; writes happen only through login and logout.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	User         *User     `json:"user,omitempty"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SessionStore is the durable key-value boundary holding the session.
// Get returns ErrNotFound when no session is stored (anonymous viewer).
type SessionStore interface {
	Get(ctx context.Context) (*Session, error)
	Put(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}

// TokenInfo is what can be read locally from an access token without
// verifying its signature. Verification belongs to the backend that issued
// the token; the client only needs expiry and identity hints.
type TokenInfo struct {
	UserID    string
	Email     string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry has passed at the given time.
// Tokens without an exp claim are treated as live.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// TokenInspector decodes token claims locally. Inspect returns an error for
// tokens that cannot be decoded at all.
type TokenInspector interface {
	Inspect(token string) (*TokenInfo, error)
}
