package handlers

import (
	"errors"
	"net/http"

	"coccigo/config"
	"coccigo/middleware"
	"coccigo/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves login and logout.
type AuthHandler struct {
	UserService user.UserService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{UserService: us}
}

// LoginHandler verifies credentials, sets the session cookie and returns
// the token alongside the caller's identity.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req struct {
		UsernameOrEmail string `json:"usernameOrEmail"`
		Password        string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.UsernameOrEmail == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "usernameOrEmail and password are required"})
		return
	}

	resp, err := h.UserService.Authenticate(req.UsernameOrEmail, req.Password)
	if err != nil {
		var banned user.BannedUserError
		var invalid user.InvalidCredentialsError
		switch {
		case errors.As(err, &banned):
			c.JSON(http.StatusForbidden, gin.H{"error": banned.Error()})
		case errors.As(err, &invalid):
			c.JSON(http.StatusUnauthorized, gin.H{"error": invalid.Error()})
		default:
			logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		}
		return
	}

	maxAge := config.AppConfig.SessionTTLMinutes * 60
	c.SetCookie(middleware.SessionCookieName, resp.Token, maxAge, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, resp)
}

// LogoutHandler clears the session cookie.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", config.IsProduction(), true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
