package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartbill/backend/internal/interfaces/http/dto"
)

// RequireRoles allows the request through when the authenticated user
// carries at least one of the given role markers. Must run after
// JWTAuthMiddleware.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
			return
		}

		if !claims.HasAnyRole(roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Insufficient role for this resource"))
			return
		}

		c.Next()
	}
}
