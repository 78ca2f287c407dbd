package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/vaultpass/vaultpass-client/internal/model"
)

var ErrEmptyToken = errors.New("server returned an empty token")

// Login exchanges email and password for an access token.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tr model.TokenResponse
	if err := c.doForm(ctx, "/auth/token", form, &tr); err != nil {
		return nil, err
	}
	return sessionFromToken(tr, email)
}

// GenerateOTP asks the API to send a one-time code to the session's email.
func (c *Client) GenerateOTP(ctx context.Context, s *Session) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/generate-otp", s, nil, nil)
}

// VerifyMFA submits the one-time code and returns the fully authenticated session.
func (c *Client) VerifyMFA(ctx context.Context, s *Session, req model.VerifyMFARequest) (*Session, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}

	var tr model.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/verify-mfa", s, req, &tr); err != nil {
		return nil, err
	}
	return sessionFromToken(tr, req.Email)
}

// Register creates an account and returns its session.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*Session, error) {
	var tr model.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", nil, req, &tr); err != nil {
		return nil, err
	}
	return sessionFromToken(tr, req.Email)
}

// ChangePassword changes the master password of the session's account.
func (c *Client) ChangePassword(ctx context.Context, s *Session, req model.ChangePasswordRequest) error {
	if err := requireSession(s); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, "/auth/change-password", s, req, nil)
}

func sessionFromToken(tr model.TokenResponse, email string) (*Session, error) {
	if tr.AccessToken == "" {
		return nil, ErrEmptyToken
	}
	s := NewSession(tr.AccessToken)
	if s.Email == "" {
		s.Email = email
	}
	return s, nil
}
