package user

import (
	"fmt"

	"coccigo/models"
	"coccigo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdmin seeds the configured admin account exactly once. Safe to call
// on every boot: an existing account with the same email is left alone.
func (s *DefaultUserService) EnsureAdmin(email, username, password string) error {
	if email == "" || username == "" || password == "" {
		return fmt.Errorf("admin bootstrap credentials are not configured")
	}

	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return fmt.Errorf("admin bootstrap lookup failed: %w", err)
	}
	if existing != nil {
		utils.GetLogger().Info("Admin account already present", zap.String("email", email))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := s.Repo.Create(admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	utils.GetLogger().Info("Admin account created", zap.String("email", email))
	return nil
}
