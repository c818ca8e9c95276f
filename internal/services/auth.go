package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"campusevents/internal/domain"
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type authService struct {
	api       domain.AuthAPI
	sessions  domain.SessionStore
	inspector domain.TokenInspector
	logger    *slog.Logger
	now       func() time.Time
}

// NewAuthService creates the client-side session lifecycle service. The
// backend owns credential verification and token issuance; this service only
// stores, inspects, and clears what it is handed.
func NewAuthService(api domain.AuthAPI, sessions domain.SessionStore, inspector domain.TokenInspector, logger *slog.Logger) domain.AuthService {
	return &authService{
		api:       api,
		sessions:  sessions,
		inspector: inspector,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidInput
	}
	if password == "" {
		return nil, domain.ErrInvalidInput
	}

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	sess.UpdatedAt = s.now()
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess.User, nil
}

func (s *authService) SignUp(ctx context.Context, in *domain.SignUpInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if !emailRegexp.MatchString(in.Email) {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = domain.RoleStudent
	}

	sess, err := s.api.SignUp(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("sign up: %w", err)
	}
	sess.UpdatedAt = s.now()
	if err := s.sessions.Put(ctx, sess); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess.User, nil
}

// ResetPassword relays an emailed reset link's uid/token pair with the new
// password. The backend checks the pair; nothing changes locally, the
// viewer still has to log in with the new password.
func (s *authService) ResetPassword(ctx context.Context, in *domain.ResetPasswordInput) error {
	if in.UID == "" || in.Token == "" || in.Password == "" {
		return domain.ErrInvalidInput
	}
	if err := s.api.ResetPassword(ctx, in); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

func (s *authService) Logout(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Viewer resolves the current viewer. A nil user means anonymous: no stored
// session, or a stored token that has expired (in which case the dead
// session is cleared so later requests stop carrying it).
func (s *authService) Viewer(ctx context.Context) (*domain.User, error) {
	sess, err := s.sessions.Get(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	if sess.AccessToken == "" {
		return nil, nil
	}

	info, err := s.inspector.Inspect(sess.AccessToken)
	if err != nil {
		s.logger.Warn("stored access token is undecodable, clearing session", "err", err)
		_ = s.sessions.Clear(ctx)
		return nil, nil
	}
	if info.Expired(s.now()) {
		if err := s.sessions.Clear(ctx); err != nil {
			s.logger.Warn("clear expired session", "err", err)
		}
		return nil, nil
	}

	if sess.User != nil {
		return sess.User, nil
	}
	// No cached user object; fall back to what the token itself carries.
	return &domain.User{ID: info.UserID, Email: info.Email, Role: info.Role}, nil
}
