package handlers

import (
	"errors"
	"net/http"

	botrunRepo "coccigo/database/repository/botrun"
	"coccigo/models"
	"coccigo/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// botRunListLimit caps the admin bot run listing.
const botRunListLimit = 50

// AdminHandler encapsulates elevated admin-level operations.
type AdminHandler struct {
	UserService user.UserService
	Runs        botrunRepo.BotRunRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, runs botrunRepo.BotRunRepository) *AdminHandler {
	return &AdminHandler{UserService: us, Runs: runs}
}

// ListBotRunsHandler returns the newest provider runs across all users.
func (ah *AdminHandler) ListBotRunsHandler(c *gin.Context) {
	runs, err := ah.Runs.ListRecent(botRunListLimit)
	if err != nil {
		zap.L().Error("Failed to fetch bot runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bot runs"})
		return
	}
	if runs == nil {
		runs = []models.BotRun{}
	}
	c.JSON(http.StatusOK, runs)
}

// CreateUserHandler provisions a regular user account.
func (ah *AdminHandler) CreateUserHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, username and password are required"})
		return
	}

	created, err := ah.UserService.CreateUser(req.Email, req.Username, req.Password)
	if err != nil {
		var dup user.DuplicateUserError
		if errors.As(err, &dup) {
			c.JSON(http.StatusConflict, gin.H{"error": dup.Error()})
			return
		}
		zap.L().Error("Failed to create user", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// BanUserHandler flags an account as banned.
func (ah *AdminHandler) BanUserHandler(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	if err := ah.UserService.BanUser(req.Email); err != nil {
		zap.L().Error("Failed to ban user", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to ban user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
