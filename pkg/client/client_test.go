package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewRehydratesSession(t *testing.T) {
	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{
		Username:    "asha",
		Roles:       []string{RoleShop},
		AccessToken: "persisted-token",
	}))

	c, err := New(Config{BaseURL: "http://localhost:8080", SessionStore: store})
	require.NoError(t, err)

	session := c.Session()
	require.NotNil(t, session)
	assert.Equal(t, "asha", session.Username)
	assert.Equal(t, "persisted-token", session.AccessToken)
}

func TestRequestAttachesBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/v1/auth/me", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"username":"asha","roles":["ROLE_SHOP"]}}`))
	}))
	defer server.Close()

	store := NewMemorySessionStore()
	require.NoError(t, store.Save(&Session{Username: "asha", AccessToken: "tok-123"}))

	c, err := New(Config{BaseURL: server.URL, SessionStore: store})
	require.NoError(t, err)

	user, err := c.Auth.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "asha", user.Username)
}

func TestRequestWithoutSessionSendsNoAuthHeader(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"data":[]}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Products.GetProducts(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestErrorCarriesBackendMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INSUFFICIENT_STOCK","message":"Only 2 left in stock"}}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Billing.GetBill(context.Background(), mustUUID(t, "8f14e45f-ea0a-4b6f-9f5f-000000000001"))
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	assert.Equal(t, "INSUFFICIENT_STOCK", apiErr.Code)
	assert.Equal(t, "Only 2 left in stock", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "Only 2 left in stock")
}

func TestErrorWithoutEnvelopeFallsBackToStatusText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = c.Reports.GetDashboardData(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Bad Gateway", apiErr.Message)
}

func TestAsyncStateTransitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"INTERNAL_ERROR","message":"boom"}}`))
	}))
	defer server.Close()

	c, err := New(Config{BaseURL: server.URL})
	require.NoError(t, err)

	status, stateErr := c.Sales.State()
	assert.Equal(t, StatusIdle, status)
	assert.NoError(t, stateErr)

	_, err = c.Sales.GetAllSales(context.Background(), SalesOptions{})
	require.Error(t, err)

	status, stateErr = c.Sales.State()
	assert.Equal(t, StatusRejected, status)
	assert.Error(t, stateErr)
}
