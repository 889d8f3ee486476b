package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authResultBody(t *testing.T, username, email string, roles []string, token string) []byte {
	t.Helper()
	payload := map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"accessToken": token,
			"tokenType":   "Bearer",
			"user": map[string]interface{}{
				"id":       "8f14e45f-ea0a-4b6f-9f5f-000000000099",
				"username": username,
				"email":    email,
				"roles":    roles,
			},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestLoginSavesSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@shop.local", body["email"])
		_, _ = w.Write(authResultBody(t, "asha", "asha@shop.local", []string{RoleShop}, "tok-login"))
	}))
	defer server.Close()

	store := NewMemorySessionStore()
	c, err := New(Config{BaseURL: server.URL, SessionStore: store})
	require.NoError(t, err)

	session, err := c.Auth.Login(context.Background(), "asha@shop.local", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "asha", session.Username)
	assert.Equal(t, []string{RoleShop}, session.Roles)
	assert.Equal(t, "tok-login", session.AccessToken)

	// Persisted through the store, not just held in memory
	persisted, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, "tok-login", persisted.AccessToken)

	status, _ := c.Auth.State()
	assert.Equal(t, StatusFulfilled, status)
}

func TestLoginRequiresCredentials(t *testing.T) {
	c, err := New(Config{BaseURL: "http://localhost:8080"})
	require.NoError(t, err)

	_, err = c.Auth.Login(context.Background(), "", "secret")
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestSignupPasswordMismatchSendsNoRequest(t *testing.T) {
	requested := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Auth.Signup(context.Background(), SignupForm{
		Username:        "asha",
		Email:           "asha@shop.local",
		Password:        "secret123",
		ConfirmPassword: "secret124",
	})
	assert.ErrorIs(t, err, ErrPasswordMismatch)
	assert.False(t, requested)
}

func TestSignupSignsIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/signup", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		// The confirmation never crosses the wire
		assert.NotContains(t, body, "confirmPassword")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write(authResultBody(t, "asha", "asha@shop.local", []string{RoleShop}, "tok-signup"))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	session, err := c.Auth.Signup(context.Background(), SignupForm{
		Username:        "asha",
		Email:           "asha@shop.local",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-signup", session.AccessToken)
}

func TestFederatedLoginAdoptsCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/federated", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "provider-opaque-token", body["providerToken"])
		_, _ = w.Write(authResultBody(t, "owner", "owner@shop.local", []string{RoleShop, RoleAdmin}, "tok-fed"))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	session, err := c.Auth.FederatedLogin(context.Background(), "provider-opaque-token")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{RoleShop, RoleAdmin}, session.Roles)
	assert.Equal(t, "tok-fed", session.AccessToken)
}

func TestSetCredentialsActsLikeLogin(t *testing.T) {
	store := NewMemorySessionStore()
	c, err := New(Config{BaseURL: "http://localhost:8080", SessionStore: store})
	require.NoError(t, err)

	_, err = c.Auth.SetCredentials(AuthResult{
		AccessToken: "tok-external",
		User:        UserInfo{Username: "owner", Email: "owner@shop.local", Roles: []string{RoleAdmin}},
	})
	require.NoError(t, err)

	session := c.Session()
	require.NotNil(t, session)
	assert.Equal(t, "tok-external", session.AccessToken)
	assert.True(t, session.HasRole(RoleAdmin))
}

func TestLogoutClearsSession(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{Username: "asha", AccessToken: "tok"}))

	c, err := New(Config{BaseURL: "http://localhost:8080", SessionStore: store})
	require.NoError(t, err)
	require.NotNil(t, c.Session())

	require.NoError(t, c.Auth.Logout())
	assert.Nil(t, c.Session())

	persisted, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, persisted)
}

func TestLoginFailureSurfacesBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INVALID_CREDENTIALS","message":"Invalid email or password"}}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Auth.Login(context.Background(), "asha@shop.local", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "INVALID_CREDENTIALS", apiErr.Code)
	assert.Nil(t, c.Session())
}
