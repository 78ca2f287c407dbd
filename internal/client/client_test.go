package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaultpass/vaultpass-client/internal/model"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func validSession() *Session {
	return &Session{AccessToken: "tok", ExpiresAt: time.Now().Add(time.Hour)}
}

func TestLogin_SendsFormAndReturnsSession(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signedToken(t, jwt.MapClaims{"sub": "alice@example.com", "exp": exp.Unix()})

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		assert.Empty(t, r.Header.Get("Authorization"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "alice@example.com", r.PostForm.Get("username"))
		assert.Equal(t, "hunter22", r.PostForm.Get("password"))

		json.NewEncoder(w).Encode(model.TokenResponse{AccessToken: token, TokenType: "bearer"})
	})

	s, err := c.Login(context.Background(), "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, token, s.AccessToken)
	assert.Equal(t, "alice@example.com", s.Email)
	assert.True(t, s.ExpiresAt.Equal(exp))
}

func TestLogin_APIErrorDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	})

	_, err := c.Login(context.Background(), "alice@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect username or password", apiErr.Detail)
	assert.True(t, IsStatus(err, http.StatusUnauthorized))
}

func TestLogin_EmptyToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := c.Login(context.Background(), "alice@example.com", "pw")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestAPIError_FallsBackToStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>oops</html>"))
	})

	err := c.DeletePassword(context.Background(), validSession(), "abc")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Bad Gateway", apiErr.Detail)
}

func TestGenerateOTPAndVerifyMFA(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.URL.Path)
		mu.Unlock()
		assert.Equal(t, "Bearer pending", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/auth/generate-otp":
			body, _ := io.ReadAll(r.Body)
			assert.Empty(t, body)
			w.WriteHeader(http.StatusOK)
		case "/auth/verify-mfa":
			var req model.VerifyMFARequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "123456", req.MFACode)
			assert.Equal(t, "bob@example.com", req.Email)
			json.NewEncoder(w).Encode(model.TokenResponse{AccessToken: "full"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	})

	pending := &Session{AccessToken: "pending"}
	require.NoError(t, c.GenerateOTP(context.Background(), pending))

	s, err := c.VerifyMFA(context.Background(), pending, model.VerifyMFARequest{MFACode: "123456", Email: "bob@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "full", s.AccessToken)
	assert.Equal(t, "bob@example.com", s.Email)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"/auth/generate-otp", "/auth/verify-mfa"}, calls)
}

func TestRegister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req model.RegisterRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "carol", req.Username)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(model.TokenResponse{AccessToken: "new"})
	})

	s, err := c.Register(context.Background(), model.RegisterRequest{Email: "carol@example.com", Username: "carol", Password: "longenough"})
	require.NoError(t, err)
	assert.Equal(t, "new", s.AccessToken)
	assert.Equal(t, "carol@example.com", s.Email)
}

func TestChangePassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/change-password", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"current_password": "old-password", "new_password": "new-password"}, body)
	})

	err := c.ChangePassword(context.Background(), validSession(), model.ChangePasswordRequest{
		CurrentPassword: "old-password",
		NewPassword:     "new-password",
	})
	assert.NoError(t, err)
}

func TestListPasswords_NormalisesIDs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/passwords/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`[
			{"_id":"m1","title":"Mail","username":"a","password":"p1","category":"Other"},
			{"id":"s2","title":"Social","username":"b","password":"p2","category":"Social"}
		]`))
	})

	entries, err := c.ListPasswords(context.Background(), validSession())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "m1", entries[0].ID)
	assert.Equal(t, "s2", entries[1].ID)
	assert.Equal(t, "Social", entries[1].Category)
}

func TestListPasswords_NullBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	entries, err := c.ListPasswords(context.Background(), validSession())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestCreateUpdateDeletePassword(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/passwords/":
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.NotContains(t, body, "id")
			assert.Equal(t, "Bank", body["title"])
			w.Write([]byte(`{"_id":"new-id","title":"Bank","password":"s3cretpass"}`))
		case r.Method == http.MethodPut && r.URL.Path == "/passwords/new-id":
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "new-id", body["id"])
			w.Write([]byte(`{"_id":"new-id","title":"Bank 2","password":"s3cretpass"}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/passwords/new-id":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	s := validSession()

	created, err := c.CreatePassword(ctx, s, model.PasswordEntry{ID: "ignored", Title: "Bank", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "new-id", created.ID)

	updated, err := c.UpdatePassword(ctx, s, created.ID, model.PasswordEntry{Title: "Bank 2", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.Equal(t, "Bank 2", updated.Title)

	require.NoError(t, c.DeletePassword(ctx, s, created.ID))
}

func TestCallsRequireSession(t *testing.T) {
	c := New("http://127.0.0.1:1")
	ctx := context.Background()

	_, err := c.ListPasswords(ctx, nil)
	assert.ErrorIs(t, err, ErrNoSession)

	expired := &Session{AccessToken: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
	_, err = c.ListPasswords(ctx, expired)
	assert.ErrorIs(t, err, ErrSessionExpired)

	assert.ErrorIs(t, c.DeletePassword(ctx, validSession(), ""), ErrEntryIDRequired)
	_, err = c.UpdatePassword(ctx, validSession(), "", model.PasswordEntry{})
	assert.ErrorIs(t, err, ErrEntryIDRequired)
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListPasswords(ctx, validSession())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
