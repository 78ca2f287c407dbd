package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/vaultpass/vaultpass-client/internal/model"
)

var ErrEntryIDRequired = errors.New("entry id is required")

// ListPasswords returns every stored credential of the session's account.
func (c *Client) ListPasswords(ctx context.Context, s *Session) ([]model.PasswordEntry, error) {
	if err := requireSession(s); err != nil {
		return nil, err
	}

	var entries []model.PasswordEntry
	if err := c.doJSON(ctx, http.MethodGet, "/passwords/", s, nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.PasswordEntry{}
	}
	return entries, nil
}

// CreatePassword stores a new credential.
func (c *Client) CreatePassword(ctx context.Context, s *Session, entry model.PasswordEntry) (model.PasswordEntry, error) {
	if err := requireSession(s); err != nil {
		return model.PasswordEntry{}, err
	}

	entry.ID = ""
	var created model.PasswordEntry
	if err := c.doJSON(ctx, http.MethodPost, "/passwords/", s, entry, &created); err != nil {
		return model.PasswordEntry{}, err
	}
	return created, nil
}

// UpdatePassword replaces the credential with the given id.
func (c *Client) UpdatePassword(ctx context.Context, s *Session, id string, entry model.PasswordEntry) (model.PasswordEntry, error) {
	if id == "" {
		return model.PasswordEntry{}, ErrEntryIDRequired
	}
	if err := requireSession(s); err != nil {
		return model.PasswordEntry{}, err
	}

	entry.ID = id
	var updated model.PasswordEntry
	if err := c.doJSON(ctx, http.MethodPut, "/passwords/"+url.PathEscape(id), s, entry, &updated); err != nil {
		return model.PasswordEntry{}, err
	}
	return updated, nil
}

// DeletePassword removes the credential with the given id.
func (c *Client) DeletePassword(ctx context.Context, s *Session, id string) error {
	if id == "" {
		return ErrEntryIDRequired
	}
	if err := requireSession(s); err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, "/passwords/"+url.PathEscape(id), s, nil, nil)
}
