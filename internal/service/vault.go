package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/vaultpass/vaultpass-client/internal/client"
	"github.com/vaultpass/vaultpass-client/internal/model"
)

var ErrEntryNotFound = errors.New("password entry not found")

// VaultAPI is the part of the vault API used for stored credentials.
type VaultAPI interface {
	ListPasswords(ctx context.Context, s *client.Session) ([]model.PasswordEntry, error)
	CreatePassword(ctx context.Context, s *client.Session, entry model.PasswordEntry) (model.PasswordEntry, error)
	UpdatePassword(ctx context.Context, s *client.Session, id string, entry model.PasswordEntry) (model.PasswordEntry, error)
	DeletePassword(ctx context.Context, s *client.Session, id string) error
}

// Filter narrows a credential listing. An empty or "all" category matches
// every entry; Query is a case-insensitive substring of title, username or URL.
type Filter struct {
	Category string
	Query    string
}

func (f Filter) matches(e model.PasswordEntry) bool {
	if f.Category != "" && !strings.EqualFold(f.Category, "all") && e.Category != f.Category {
		return false
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	for _, field := range []string{e.Title, e.Username, e.URL} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// VaultService handles stored credential business logic.
type VaultService struct {
	api VaultAPI
}

// NewVaultService creates a new VaultService.
func NewVaultService(api VaultAPI) *VaultService {
	return &VaultService{api: api}
}

// List returns the session's credentials that match f, in API order.
func (s *VaultService) List(ctx context.Context, sess *client.Session, f Filter) ([]model.PasswordEntry, error) {
	entries, err := s.api.ListPasswords(ctx, sess)
	if err != nil {
		return nil, err
	}

	result := make([]model.PasswordEntry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			result = append(result, e)
		}
	}
	return result, nil
}

// Get returns the credential with the given id.
func (s *VaultService) Get(ctx context.Context, sess *client.Session, id string) (model.PasswordEntry, error) {
	entries, err := s.api.ListPasswords(ctx, sess)
	if err != nil {
		return model.PasswordEntry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return model.PasswordEntry{}, ErrEntryNotFound
}

// Create validates and stores a new credential.
func (s *VaultService) Create(ctx context.Context, sess *client.Session, entry model.PasswordEntry) (model.PasswordEntry, error) {
	entry = prepareEntry(entry)
	if err := validateStruct(entry); err != nil {
		return model.PasswordEntry{}, err
	}
	return s.api.CreatePassword(ctx, sess, entry)
}

// Update validates and replaces the credential with the given id.
func (s *VaultService) Update(ctx context.Context, sess *client.Session, id string, entry model.PasswordEntry) (model.PasswordEntry, error) {
	if id == "" {
		return model.PasswordEntry{}, client.ErrEntryIDRequired
	}
	entry = prepareEntry(entry)
	if err := validateStruct(entry); err != nil {
		return model.PasswordEntry{}, err
	}

	updated, err := s.api.UpdatePassword(ctx, sess, id, entry)
	if client.IsStatus(err, http.StatusNotFound) {
		return model.PasswordEntry{}, ErrEntryNotFound
	}
	return updated, err
}

// Delete removes the credential with the given id.
func (s *VaultService) Delete(ctx context.Context, sess *client.Session, id string) error {
	err := s.api.DeletePassword(ctx, sess, id)
	if client.IsStatus(err, http.StatusNotFound) {
		return ErrEntryNotFound
	}
	return err
}

// SaveGenerated stores a freshly generated password as a new credential.
func (s *VaultService) SaveGenerated(ctx context.Context, sess *client.Session, password string) (model.PasswordEntry, error) {
	return s.Create(ctx, sess, model.PasswordEntry{
		Title:    "Generated Password",
		Username: "N/A",
		Password: password,
		Category: model.CategoryOther,
		Notes:    "Password generated using the password generator",
	})
}

// prepareEntry escapes markup in free-text fields and applies the default
// category. The password itself is sent untouched.
func prepareEntry(e model.PasswordEntry) model.PasswordEntry {
	e.Title = escapeMarkup(strings.TrimSpace(e.Title))
	e.Username = escapeMarkup(e.Username)
	e.URL = escapeMarkup(strings.TrimSpace(e.URL))
	e.Notes = escapeMarkup(e.Notes)
	e.Category = escapeMarkup(e.Category)
	if e.Category == "" {
		e.Category = model.CategoryLogin
	}
	return e
}

var markupReplacer = strings.NewReplacer("<", "&lt;", ">", "&gt;")

func escapeMarkup(s string) string {
	return markupReplacer.Replace(s)
}
