package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// TokenParser verifies access tokens
type TokenParser interface {
	ParseToken(tokenString string) (*services.Claims, error)
}

// UserLoader resolves the account behind a token
type UserLoader interface {
	GetUserByID(id int) (*models.User, error)
}

// RequireAuth verifies the bearer token and loads the current user into the
// request context. Requests without a valid token get 401.
func RequireAuth(parser TokenParser, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := parser.ParseToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		user, err := users.GetUserByID(claims.UserID)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RequireRoles allows only users whose role is in the given set.
// Must run after RequireAuth.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "insufficient permissions",
		})
	}
}

// RequireAdmin allows only admins
func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin)
}

// RequireAdminOrPremium allows admins and premium users
func RequireAdminOrPremium() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RolePremium)
}

// RequireOwnershipOrAdmin allows admins, or users operating on their own
// :id resource. Must run after RequireAuth.
func RequireOwnershipOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		if user.IsAdmin() {
			c.Next()
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id != user.ID {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "you can only access your own resources",
			})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or nil
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
