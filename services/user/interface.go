package user

import (
	userRepo "coccigo/database/repository/user"
	"coccigo/models"
)

// UserService covers authentication and the admin-side account operations.
type UserService interface {
	Authenticate(usernameOrEmail, password string) (*AuthResponse, error)
	CreateUser(email, username, password string) (*models.User, error)
	BanUser(email string) error
	EnsureAdmin(email, username, password string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// AuthResponse contains the user's ID, session token, and display details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
