package user

import (
	"fmt"
	"time"

	"coccigo/config"
	"coccigo/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Authenticate verifies credentials against either unique identifier and
// issues a session token. Banned accounts never get a token.
func (s *DefaultUserService) Authenticate(usernameOrEmail, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByUsernameOrEmail(usernameOrEmail)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, InvalidCredentialsError{}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, InvalidCredentialsError{}
	}

	if userRec.Banned {
		return nil, BannedUserError{Email: userRec.Email}
	}

	ttl := time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute
	token, err := utils.GenerateSessionToken(utils.SessionClaims{
		UserID:   userRec.ID,
		Username: userRec.Username,
		Role:     userRec.Role,
		Banned:   userRec.Banned,
	}, ttl)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	if err := s.Repo.TouchLastLogin(userRec.ID); err != nil {
		// A missing login stamp is not worth failing the login over.
		utils.GetLogger().Warn("Authenticate: failed to stamp last login", zap.Error(err))
	}

	return &AuthResponse{
		ID:       userRec.ID,
		Token:    token,
		Username: userRec.Username,
		Role:     userRec.Role,
	}, nil
}
