package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perfhub/backend/internal/domain/identity"
)

// RequireRoles restricts a route to the given roles. It expects the JWT
// middleware to have already stored claims in the context; requests without
// claims are rejected as unauthenticated.
func RequireRoles(roles ...identity.Role) gin.HandlerFunc {
	allowed := make(map[identity.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		role, err := identity.ParseRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Unknown role",
				},
			})
			return
		}

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient permissions",
				},
			})
			return
		}

		c.Next()
	}
}

// RequireAdmin restricts a route to administrators
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(identity.RoleAdmin)
}

// RequireManager restricts a route to managers and administrators
func RequireManager() gin.HandlerFunc {
	return RequireRoles(identity.RoleManager, identity.RoleAdmin)
}
