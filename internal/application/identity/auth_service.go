package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/smartbill/backend/internal/domain/identity"
	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	// AdminEmails are granted ROLE_ADMIN when their account is created.
	// Role membership then lives on the stored account, and every issued
	// token carries the roles as a claim.
	AdminEmails []string
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	verifier   auth.FederatedVerifier
	config     AuthServiceConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	verifier auth.FederatedVerifier,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		verifier:   verifier,
		config:     config,
		logger:     logger,
	}
}

// Signup registers a local account and signs the user in
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if exists, err := s.userRepo.ExistsByEmail(ctx, email); err != nil {
		s.logger.Error("Failed to check email existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	} else if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	if exists, err := s.userRepo.ExistsByUsername(ctx, input.Username); err != nil {
		s.logger.Error("Failed to check username existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	} else if exists {
		return nil, shared.NewDomainError("USERNAME_TAKEN", "This username is already in use")
	}

	user, err := identity.NewUser(input.Username, email, input.Password)
	if err != nil {
		return nil, err
	}
	if s.isAdminEmail(email) {
		user.GrantRole(identity.RoleAdmin)
	}
	user.RecordLogin()

	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save new user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register account")
	}

	s.logger.Info("Account registered",
		zap.String("username", user.Username),
		zap.Strings("roles", user.Roles))

	return s.issueToken(user)
}

// Login authenticates with email and password
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Login attempt for unknown email", zap.String("email", email))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("username", user.Username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("Login succeeded", zap.String("username", user.Username))
	return s.issueToken(user)
}

// FederatedLogin exchanges a provider-issued token for a local session,
// provisioning the account on first login
func (s *AuthService) FederatedLogin(ctx context.Context, input FederatedLoginInput) (*AuthResult, error) {
	identityInfo, err := s.verifier.Verify(ctx, input.ProviderToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrFederatedDisabled):
			return nil, shared.NewDomainError("FEDERATED_DISABLED", "Federated login is not enabled")
		case errors.Is(err, auth.ErrProviderTokenInvalid):
			return nil, shared.NewDomainError("INVALID_PROVIDER_TOKEN", "The identity provider rejected the token")
		default:
			s.logger.Error("Federated verification failed", zap.Error(err))
			return nil, shared.NewDomainError("PROVIDER_UNAVAILABLE", "Could not reach the identity provider")
		}
	}

	email := strings.ToLower(identityInfo.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			s.logger.Error("Failed to look up federated user", zap.Error(err))
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to sign in")
		}

		user, err = identity.NewFederatedUser(identityInfo.Name, email)
		if err != nil {
			return nil, err
		}
		if s.isAdminEmail(email) {
			user.GrantRole(identity.RoleAdmin)
		}
		s.logger.Info("Provisioned federated account",
			zap.String("username", user.Username),
			zap.Strings("roles", user.Roles))
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		s.logger.Error("Failed to save federated user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to sign in")
	}

	return s.issueToken(user)
}

// CurrentUser returns profile information for an authenticated user
func (s *AuthService) CurrentUser(ctx context.Context, claims *auth.Claims) (*UserInfo, error) {
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	}, nil
}

func (s *AuthService) issueToken(user *identity.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateToken(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
	})
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to issue session token")
	}

	return &AuthResult{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		TokenType:   token.TokenType,
		User: UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			Roles:    user.Roles,
		},
	}, nil
}

func (s *AuthService) isAdminEmail(email string) bool {
	for _, admin := range s.config.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}
