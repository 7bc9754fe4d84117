package models

import "time"

// Roles assignable to a user account.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a platform account. Credentials are stored as a bcrypt
// hash and never serialized.
type User struct {
	ID           string     `bson:"id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	Username     string     `bson:"username" json:"username"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Role         string     `bson:"role" json:"role"`
	Banned       bool       `bson:"banned" json:"banned"`
	LastLoginAt  *time.Time `bson:"last_login_at,omitempty" json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
}
