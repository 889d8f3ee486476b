package identity

import (
	"time"

	"github.com/google/uuid"
)

// SignupInput contains input for account registration
type SignupInput struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginInput contains input for password login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// FederatedLoginInput contains input for the token-exchange login flow
type FederatedLoginInput struct {
	ProviderToken string `json:"providerToken" binding:"required"`
}

// UserInfo contains basic user information returned after authentication
type UserInfo struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}

// AuthResult contains the result of a successful authentication
type AuthResult struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
	User        UserInfo  `json:"user"`
}
