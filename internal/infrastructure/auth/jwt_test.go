package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smartbill/backend/internal/infrastructure/config"
)

func testService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-for-jwt-signing-32ch",
		AccessTokenExpiration: expiration,
		Issuer:                "smartbill-test",
	})
}

func TestJWTService_GenerateToken(t *testing.T) {
	svc := testService(time.Hour)

	token, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "shopuser",
		Email:    "shop@example.com",
		Roles:    []string{"ROLE_SHOP"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)
}

func TestJWTService_ValidateToken(t *testing.T) {
	svc := testService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(GenerateTokenInput{
		UserID:   userID,
		Username: "adminuser",
		Email:    "admin@example.com",
		Roles:    []string{"ROLE_SHOP", "ROLE_ADMIN"},
	})
	require.NoError(t, err)

	t.Run("accepts a valid token and returns claims", func(t *testing.T) {
		claims, err := svc.ValidateToken(token.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "adminuser", claims.Username)
		assert.Equal(t, "admin@example.com", claims.Email)
		assert.True(t, claims.HasRole("ROLE_ADMIN"))
		assert.True(t, claims.HasAnyRole("ROLE_ADMIN", "ROLE_OTHER"))
		assert.False(t, claims.HasRole("ROLE_OTHER"))

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("rejects a malformed token", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                "a-completely-different-secret-key-32",
			AccessTokenExpiration: time.Hour,
			Issuer:                "smartbill-test",
		})
		otherToken, err := other.GenerateToken(GenerateTokenInput{
			UserID: uuid.New(), Username: "x", Email: "x@example.com",
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(otherToken.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		expired := testService(-time.Minute)
		expiredToken, err := expired.GenerateToken(GenerateTokenInput{
			UserID: uuid.New(), Username: "x", Email: "x@example.com",
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(expiredToken.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}
