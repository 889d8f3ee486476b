package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Role names issued by the backend.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleShop  = "ROLE_SHOP"
)

// Validation errors raised before any request is sent.
var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrMissingField     = errors.New("required field is missing")
)

// UserInfo is the backend's view of the signed-in user.
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}

// AuthResult is the credential payload issued at signup, login, and
// federated exchange.
type AuthResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
	User        UserInfo  `json:"user"`
}

// SignupForm collects the signup fields. ConfirmPassword is checked
// locally and never sent.
type SignupForm struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"-"`
}

// AuthStore handles sign-in state against the backend's auth endpoints.
type AuthStore struct {
	client *Client
	async  asyncState
}

// State returns the status and last error of the most recent auth request.
func (s *AuthStore) State() (Status, error) {
	return s.async.state()
}

// Signup registers a new account and signs in with the issued
// credentials. The password confirmation is validated before any
// request is sent.
func (s *AuthStore) Signup(ctx context.Context, form SignupForm) (*Session, error) {
	if form.Username == "" || form.Email == "" || form.Password == "" {
		return nil, ErrMissingField
	}
	if form.Password != form.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	var result AuthResult
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodPost, "/auth/signup", nil, form, &result)
	})
	if err != nil {
		return nil, err
	}
	return s.adoptCredentials(result)
}

// Login exchanges email and password for a session.
func (s *AuthStore) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, ErrMissingField
	}

	body := map[string]string{"email": email, "password": password}
	var result AuthResult
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodPost, "/auth/login", nil, body, &result)
	})
	if err != nil {
		return nil, err
	}
	return s.adoptCredentials(result)
}

// FederatedLogin exchanges a federated provider token for first-party
// credentials. The result is adopted exactly like a password login.
func (s *AuthStore) FederatedLogin(ctx context.Context, providerToken string) (*Session, error) {
	if providerToken == "" {
		return nil, ErrMissingField
	}

	body := map[string]string{"providerToken": providerToken}
	var result AuthResult
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodPost, "/auth/federated", nil, body, &result)
	})
	if err != nil {
		return nil, err
	}
	return s.adoptCredentials(result)
}

// SetCredentials adopts externally obtained credentials as the current
// session, as if they came from Login.
func (s *AuthStore) SetCredentials(result AuthResult) (*Session, error) {
	return s.adoptCredentials(result)
}

// Logout clears the session locally. The token is simply discarded.
func (s *AuthStore) Logout() error {
	s.async.reset()
	return s.client.setSession(nil)
}

// CurrentUser fetches the signed-in user's profile.
func (s *AuthStore) CurrentUser(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	err := s.async.track(func() error {
		return s.client.do(ctx, http.MethodGet, "/auth/me", nil, nil, &user)
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthStore) adoptCredentials(result AuthResult) (*Session, error) {
	session := &Session{
		Username:    result.User.Username,
		Email:       result.User.Email,
		Roles:       append([]string(nil), result.User.Roles...),
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
	}
	if err := s.client.setSession(session); err != nil {
		return nil, err
	}
	return s.client.Session(), nil
}
