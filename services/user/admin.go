package user

import (
	"fmt"

	"coccigo/models"
	"coccigo/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// CreateUser provisions a regular account. The existing record is left
// untouched when either unique field is already taken.
func (s *DefaultUserService) CreateUser(email, username, password string) (*models.User, error) {
	if email == "" || username == "" || password == "" {
		return nil, fmt.Errorf("email, username and password are required")
	}

	taken, err := s.Repo.ExistsByEmailOrUsername(email, username)
	if err != nil {
		utils.GetLogger().Error("CreateUser: availability check failed", zap.Error(err))
		return nil, fmt.Errorf("user creation failed, please try again")
	}
	if taken {
		return nil, DuplicateUserError{Field: "email or username"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usr := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
	}
	if err := s.Repo.Create(usr); err != nil {
		utils.GetLogger().Error("CreateUser: insert failed", zap.Error(err))
		return nil, fmt.Errorf("user creation failed, please try again")
	}
	return usr, nil
}

// BanUser flags the account; its sessions are rejected from the next
// capability check onward.
func (s *DefaultUserService) BanUser(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	return s.Repo.SetBanned(email, true)
}
