// Package validation holds the per-operation validator chains run before any
// mutating write. A chain is a plain ordered slice of single-method
// validators; the first failure aborts the whole operation. Validators never
// mutate their candidate, so chains can be extended and reordered at wiring
// time without touching the services that run them.
package validation

import (
	"context"
	"errors"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

var (
	ErrInvalidPage            = errors.New("page value must be greater than 0")
	ErrInvalidSize            = errors.New("size value must be greater than or equal to 0")
	ErrUserMandatoryField     = errors.New("name, login, email and password are mandatory fields")
	ErrEmailFormat            = errors.New("email format is invalid")
	ErrLoginChanged           = errors.New("login cannot be changed")
	ErrAddressMandatoryField  = errors.New("address user id is a mandatory field")
	ErrUserRoleMandatoryField = errors.New("user id and role id are mandatory fields")
	ErrPasswordMismatch       = errors.New("new password and repeat new password do not match")
)

// CreateUserValidation validates a user candidate before it is inserted.
type CreateUserValidation interface {
	Validate(ctx context.Context, u *entity.User) error
}

// UpdateUserValidation validates the merged user candidate before an update.
type UpdateUserValidation interface {
	Validate(ctx context.Context, u *entity.User) error
}

// CreateAddressValidation validates an address before insert or update.
type CreateAddressValidation interface {
	Validate(ctx context.Context, a *entity.Address) error
}

// CreateUserRoleValidation validates a role assignment before insert.
type CreateUserRoleValidation interface {
	Validate(ctx context.Context, ur *entity.UserRole) error
}

// UpdatePasswordValidation validates a password-change request. It runs
// before the user is even looked up.
type UpdatePasswordValidation interface {
	Validate(ctx context.Context, up *entity.UpdatePassword) error
}
