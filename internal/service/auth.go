package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vaultpass/vaultpass-client/internal/client"
	"github.com/vaultpass/vaultpass-client/internal/model"
)

var (
	ErrPasswordMismatch = errors.New("new passwords don't match")
	ErrPendingMFA       = errors.New("no login awaiting verification")
)

var now = time.Now

// AuthAPI is the part of the vault API used for account operations.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.Session, error)
	GenerateOTP(ctx context.Context, s *client.Session) error
	VerifyMFA(ctx context.Context, s *client.Session, req model.VerifyMFARequest) (*client.Session, error)
	Register(ctx context.Context, req model.RegisterRequest) (*client.Session, error)
	ChangePassword(ctx context.Context, s *client.Session, req model.ChangePasswordRequest) error
}

// SessionStore persists the authenticated session.
type SessionStore interface {
	Save(s *client.Session) error
	Load() (*client.Session, error)
	Clear() error
}

// AuthService handles account business logic: registration, two-step login
// and master password changes.
type AuthService struct {
	api   AuthAPI
	store SessionStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(api AuthAPI, store SessionStore) *AuthService {
	return &AuthService{api: api, store: store}
}

// Register creates an account and stores its session.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*client.Session, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	sess, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// BeginLogin checks the credentials and asks the API to email a one-time
// code. The returned session is only good for VerifyLogin and is not stored.
func (s *AuthService) BeginLogin(ctx context.Context, email, password string) (*client.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidRequest)
	}

	pending, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.api.GenerateOTP(ctx, pending); err != nil {
		return nil, err
	}
	return pending, nil
}

// VerifyLogin completes a login with the emailed code and stores the session.
func (s *AuthService) VerifyLogin(ctx context.Context, pending *client.Session, email, code string) (*client.Session, error) {
	if pending == nil {
		return nil, ErrPendingMFA
	}

	req := model.VerifyMFARequest{MFACode: strings.TrimSpace(code), Email: strings.TrimSpace(email)}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	sess, err := s.api.VerifyMFA(ctx, pending, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Logout forgets the stored session.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// Session returns the stored session if it is still usable.
func (s *AuthService) Session() (*client.Session, error) {
	sess, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if !sess.Valid(now()) {
		return nil, client.ErrSessionExpired
	}
	return sess, nil
}

// ChangeMasterPassword changes the account password after checking that the
// confirmation matches.
func (s *AuthService) ChangeMasterPassword(ctx context.Context, sess *client.Session, current, next, confirm string) error {
	if next != confirm {
		return ErrPasswordMismatch
	}

	req := model.ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	if err := validateStruct(req); err != nil {
		return err
	}
	return s.api.ChangePassword(ctx, sess, req)
}
