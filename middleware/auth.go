package middleware

import (
	"net/http"
	"strings"

	"coccigo/models"
	"coccigo/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "token"

const capabilityKey = "capability"

// Capability is the one identity check a request gets; handlers downstream
// read it instead of re-deriving role and ban state.
type Capability struct {
	UserID   string
	Username string
	Role     string
	Banned   bool
}

// GetCapability returns the capability stored by SessionAuth, if any.
func GetCapability(c *gin.Context) (Capability, bool) {
	v, exists := c.Get(capabilityKey)
	if !exists {
		return Capability{}, false
	}
	cap, ok := v.(Capability)
	return cap, ok
}

// extractToken prefers the session cookie, falling back to a Bearer header
// for non-browser clients.
func extractToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionAuth validates the session token and stores a Capability in the
// context. Missing, invalid and expired tokens are rejected identically;
// banned accounts are refused outright.
func SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		if claims.Banned {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "this account has been banned"})
			return
		}

		c.Set(capabilityKey, Capability{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			Banned:   claims.Banned,
		})
		c.Next()
	}
}

// RequireAdmin gates a route group on the admin role. Must run after
// SessionAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		cap, ok := GetCapability(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if cap.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
