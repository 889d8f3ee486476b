package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/smartbill/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role markers carried in the session and in issued tokens.
// Roles are a backend-issued claim; clients never derive them locally.
const (
	RoleAdmin = "ROLE_ADMIN"
	RoleShop  = "ROLE_SHOP"
)

// AuthProvider identifies how the account authenticates
type AuthProvider string

const (
	ProviderLocal     AuthProvider = "local"
	ProviderFederated AuthProvider = "federated"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents an account that can sign in and operate the shop
type User struct {
	shared.BaseEntity
	Username     string       `gorm:"type:varchar(100);not null;uniqueIndex"`
	Email        string       `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string       `gorm:"type:varchar(200)"`
	Roles        []string     `gorm:"serializer:json;type:text"`
	Provider     AuthProvider `gorm:"type:varchar(20);not null;default:'local'"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a local user with a hashed password and the shop role
func NewUser(username, email, password string) (*User, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Roles:        []string{RoleShop},
		Provider:     ProviderLocal,
	}, nil
}

// NewFederatedUser creates a user provisioned from a federated identity.
// Federated accounts carry no local password.
func NewFederatedUser(username, email string) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if username == "" {
		username = email
	}

	return &User{
		BaseEntity: shared.NewBaseEntity(),
		Username:   strings.TrimSpace(username),
		Email:      strings.ToLower(strings.TrimSpace(email)),
		Roles:      []string{RoleShop},
		Provider:   ProviderFederated,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// HasRole reports whether the user carries the given role marker
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// GrantRole adds a role marker if not already present
func (u *User) GrantRole(role string) {
	if u.HasRole(role) {
		return
	}
	u.Roles = append(u.Roles, role)
	u.Touch()
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.Touch()
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

func validateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 100 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 100 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
