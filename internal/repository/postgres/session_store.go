package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"campusevents/internal/domain"
)

// SessionStore persists the single viewer session in Postgres. It is the
// durable key-value boundary of the gateway: one row, overwritten at login
// and deleted at logout or when the backend rejects the token.
type SessionStore struct {
	DB *sql.DB
}

func NewSessionStore(db *sql.DB) domain.SessionStore {
	return &SessionStore{DB: db}
}

// The store is keyed by a fixed id; there is exactly one viewer per gateway
// instance.
const sessionRowID = 1

func (s *SessionStore) Get(ctx context.Context) (*domain.Session, error) {
	query := `
		SELECT access_token, refresh_token, user_json, updated_at
		FROM viewer_session
		WHERE id = $1
	`
	sess := &domain.Session{}
	var userJSON []byte
	err := s.DB.QueryRowContext(ctx, query, sessionRowID).Scan(&sess.AccessToken, &sess.RefreshToken, &userJSON, &sess.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(userJSON) > 0 {
		user := &domain.User{}
		if err := json.Unmarshal(userJSON, user); err != nil {
			return nil, fmt.Errorf("decode cached user: %w", err)
		}
		sess.User = user
	}
	return sess, nil
}

func (s *SessionStore) Put(ctx context.Context, sess *domain.Session) error {
	var userJSON []byte
	if sess.User != nil {
		var err error
		userJSON, err = json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("encode cached user: %w", err)
		}
	}
	query := `
		INSERT INTO viewer_session (id, access_token, refresh_token, user_json, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET access_token = EXCLUDED.access_token, refresh_token = EXCLUDED.refresh_token,
		    user_json = EXCLUDED.user_json, updated_at = EXCLUDED.updated_at
	`
	_, err := s.DB.ExecContext(ctx, query, sessionRowID, sess.AccessToken, sess.RefreshToken, userJSON, sess.UpdatedAt)
	return err
}

func (s *SessionStore) Clear(ctx context.Context) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM viewer_session WHERE id = $1`, sessionRowID)
	return err
}
