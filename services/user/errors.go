package user

import "fmt"

// DuplicateUserError reports that the email or username is already taken.
type DuplicateUserError struct {
	Field string
}

func (e DuplicateUserError) Error() string {
	return fmt.Sprintf("a user with this %s already exists", e.Field)
}

// BannedUserError reports a login attempt on a banned account.
type BannedUserError struct {
	Email string
}

func (e BannedUserError) Error() string {
	return "this account has been banned"
}

// InvalidCredentialsError covers unknown accounts and wrong passwords
// identically, so a caller cannot probe which one it was.
type InvalidCredentialsError struct{}

func (e InvalidCredentialsError) Error() string {
	return "invalid username/email or password"
}
