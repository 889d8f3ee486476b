// Package client is a Go SDK for the SmartBill backend API. It wraps the
// REST endpoints behind typed stores (auth, products, billing, sales,
// reports), keeps the signed-in session in a pluggable SessionStore, and
// attaches the bearer token to every authenticated request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the backend origin, e.g. "http://localhost:8080".
	BaseURL string

	// APIVersion defaults to "v1".
	APIVersion string

	// Timeout bounds each request. Zero means no timeout.
	Timeout time.Duration

	// SessionStore persists the signed-in session across runs.
	// Defaults to an in-memory store.
	SessionStore SessionStore
}

// Client talks to the SmartBill backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiVersion string
	store      SessionStore

	mu      sync.RWMutex
	session *Session

	Auth     *AuthStore
	Products *ProductStore
	Billing  *BillingStore
	Sales    *SalesStore
	Reports  *ReportStore
}

// New creates a Client and rehydrates any persisted session from the
// session store.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = "v1"
	}
	if cfg.SessionStore == nil {
		cfg.SessionStore = NewMemorySessionStore()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiVersion: cfg.APIVersion,
		store:      cfg.SessionStore,
	}

	session, err := c.store.Load()
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	c.session = session

	c.Auth = &AuthStore{client: c}
	c.Products = &ProductStore{client: c}
	c.Billing = &BillingStore{client: c}
	c.Sales = &SalesStore{client: c}
	c.Reports = &ReportStore{client: c}

	return c, nil
}

// Session returns a copy of the current session, or nil when signed out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	s.Roles = append([]string(nil), c.session.Roles...)
	return &s
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) setSession(s *Session) error {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
	return c.store.Save(s)
}

// APIError is a backend-reported failure, carrying the error code and
// message from the response envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// envelope is the backend's uniform response shape.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// do executes a JSON API request and decodes the envelope's data field
// into out (if non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	raw, err := c.doRaw(ctx, method, path, query, body, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if env.Data == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// doRaw executes a request and returns the raw response body. Non-2xx
// responses become an *APIError built from the envelope when possible.
func (c *Client) doRaw(ctx context.Context, method, path string, query url.Values, body interface{}, accept string) ([]byte, error) {
	u := c.baseURL + "/api/" + c.apiVersion + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s := c.Session(); s != nil && s.AccessToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.AccessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}
	return raw, nil
}
