package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/smartbill/backend/internal/infrastructure/config"
)

// Common federated verification errors
var (
	ErrFederatedDisabled    = errors.New("federated login is disabled")
	ErrProviderTokenInvalid = errors.New("provider rejected the token")
	ErrProviderUnavailable  = errors.New("identity provider unavailable")
)

// ProviderIdentity is the identity asserted by the external provider
type ProviderIdentity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// FederatedVerifier verifies a provider-issued token and returns the
// identity it asserts
type FederatedVerifier interface {
	Verify(ctx context.Context, providerToken string) (*ProviderIdentity, error)
}

// UserInfoVerifier verifies provider tokens against the provider's
// userinfo endpoint. The token is treated as opaque: the provider is the
// only party that can validate it.
type UserInfoVerifier struct {
	cfg    config.FederatedConfig
	client *http.Client
}

// NewUserInfoVerifier creates a verifier for the configured provider
func NewUserInfoVerifier(cfg config.FederatedConfig) *UserInfoVerifier {
	return &UserInfoVerifier{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// Verify calls the provider's userinfo endpoint with the token and
// returns the asserted identity
func (v *UserInfoVerifier) Verify(ctx context.Context, providerToken string) (*ProviderIdentity, error) {
	if !v.cfg.Enabled {
		return nil, ErrFederatedDisabled
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.cfg.UserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+providerToken)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrProviderTokenInvalid
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var identity ProviderIdentity
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("decoding userinfo response: %w", err)
	}
	if identity.Email == "" {
		return nil, ErrProviderTokenInvalid
	}

	return &identity, nil
}

// IsAdminEmail reports whether the provider email is configured as an
// administrator account
func (v *UserInfoVerifier) IsAdminEmail(email string) bool {
	for _, admin := range v.cfg.AdminEmails {
		if admin == email {
			return true
		}
	}
	return false
}
