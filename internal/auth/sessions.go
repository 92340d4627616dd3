package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmlee-dev/reportdeck/internal/db"
)

// SessionStore persists admin session tokens. Sessions have no expiry;
// they are removed only by explicit logout.
type SessionStore struct {
	db *db.DB
}

// NewSessionStore creates a session store.
func NewSessionStore(database *db.DB) *SessionStore {
	return &SessionStore{db: database}
}

// Create mints a new session token.
func (s *SessionStore) Create(ctx context.Context) (string, error) {
	token := uuid.New().String()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (token, created_at) VALUES (?, ?)`,
		token, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return token, nil
}

// Valid reports whether the token belongs to a live session.
func (s *SessionStore) Valid(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE token = ?`, token,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking session: %w", err)
	}
	return count > 0, nil
}

// Delete removes a session (logout). Deleting an unknown token is not an
// error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
