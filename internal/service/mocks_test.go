package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vaultpass/vaultpass-client/internal/client"
	"github.com/vaultpass/vaultpass-client/internal/model"
)

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Login(ctx context.Context, email, password string) (*client.Session, error) {
	args := m.Called(ctx, email, password)
	s, _ := args.Get(0).(*client.Session)
	return s, args.Error(1)
}

func (m *mockAuthAPI) GenerateOTP(ctx context.Context, s *client.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockAuthAPI) VerifyMFA(ctx context.Context, s *client.Session, req model.VerifyMFARequest) (*client.Session, error) {
	args := m.Called(ctx, s, req)
	sess, _ := args.Get(0).(*client.Session)
	return sess, args.Error(1)
}

func (m *mockAuthAPI) Register(ctx context.Context, req model.RegisterRequest) (*client.Session, error) {
	args := m.Called(ctx, req)
	s, _ := args.Get(0).(*client.Session)
	return s, args.Error(1)
}

func (m *mockAuthAPI) ChangePassword(ctx context.Context, s *client.Session, req model.ChangePasswordRequest) error {
	return m.Called(ctx, s, req).Error(0)
}

type mockVaultAPI struct {
	mock.Mock
}

func (m *mockVaultAPI) ListPasswords(ctx context.Context, s *client.Session) ([]model.PasswordEntry, error) {
	args := m.Called(ctx, s)
	entries, _ := args.Get(0).([]model.PasswordEntry)
	return entries, args.Error(1)
}

func (m *mockVaultAPI) CreatePassword(ctx context.Context, s *client.Session, entry model.PasswordEntry) (model.PasswordEntry, error) {
	args := m.Called(ctx, s, entry)
	return args.Get(0).(model.PasswordEntry), args.Error(1)
}

func (m *mockVaultAPI) UpdatePassword(ctx context.Context, s *client.Session, id string, entry model.PasswordEntry) (model.PasswordEntry, error) {
	args := m.Called(ctx, s, id, entry)
	return args.Get(0).(model.PasswordEntry), args.Error(1)
}

func (m *mockVaultAPI) DeletePassword(ctx context.Context, s *client.Session, id string) error {
	return m.Called(ctx, s, id).Error(0)
}

// memStore is an in-memory SessionStore.
type memStore struct {
	session *client.Session
	saves   int
}

func (m *memStore) Save(s *client.Session) error {
	m.session = s
	m.saves++
	return nil
}

func (m *memStore) Load() (*client.Session, error) {
	if m.session == nil {
		return nil, client.ErrNoSession
	}
	return m.session, nil
}

func (m *memStore) Clear() error {
	m.session = nil
	return nil
}
