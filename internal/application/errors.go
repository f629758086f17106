package application

import "errors"

// Operation failures. Every distinct failure an operation can produce is a
// sentinel so callers discriminate with errors.Is instead of string
// matching. Validation failures live in the validation package.
var (
	ErrIDRequired   = errors.New("id is required")
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")

	ErrInvalidPassword = errors.New("the old password is invalid")

	ErrLoginInUse = errors.New("login already in use")
	ErrEmailInUse = errors.New("email already in use")

	ErrSaveUser       = errors.New("error saving user")
	ErrUpdateUser     = errors.New("error updating user")
	ErrUpdatePassword = errors.New("error updating password")
	ErrSaveAddress    = errors.New("error saving address")
	ErrSaveUserRole   = errors.New("error saving user role")
)
