package userRepo

import "coccigo/models"

// UserRepository abstracts the users collection.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByUsernameOrEmail(identifier string) (*models.User, error)
	ExistsByEmailOrUsername(email, username string) (bool, error)
	SetBanned(email string, banned bool) error
	TouchLastLogin(id string) error
}
