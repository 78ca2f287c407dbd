package client

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrNoSession      = errors.New("not logged in")
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// Session holds the bearer token for authenticated API calls. It is passed
// explicitly to every call that needs it.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// NewSession builds a session from an access token. When the token is a JWT
// its expiry and subject are read without verifying the signature; the API
// remains the authority on whether the token is accepted.
func NewSession(token string) *Session {
	s := &Session{AccessToken: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return s
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		s.Email = email
	} else if sub, err := claims.GetSubject(); err == nil {
		s.Email = sub
	}

	return s
}

// Valid reports whether the session has a token that has not expired at now.
// A session without a known expiry is considered valid.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.AccessToken == "" {
		return false
	}
	return s.ExpiresAt.IsZero() || now.Before(s.ExpiresAt)
}

// SessionStore persists a session between CLI invocations.
type SessionStore struct {
	path string
}

// NewSessionStore returns a store backed by the file at path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Path returns the backing file.
func (st *SessionStore) Path() string {
	return st.path
}

// Save writes the session, readable by the current user only.
func (st *SessionStore) Save(s *Session) error {
	if s == nil || s.AccessToken == "" {
		return ErrNoSession
	}
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return errors.Wrap(err, "creating session directory")
	}

	data, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	tmp := st.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "writing session")
	}
	return errors.Wrap(os.Rename(tmp, st.path), "writing session")
}

// Load reads the stored session. ErrNoSession is returned when none exists.
func (st *SessionStore) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, errors.Wrap(err, "reading session")
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrapf(err, "decoding session %s", st.path)
	}
	if s.AccessToken == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// Clear removes the stored session. Clearing a missing session is not an error.
func (st *SessionStore) Clear() error {
	if err := os.Remove(st.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session")
	}
	return nil
}
