package validation

import (
	"context"
	"net/mail"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

// UserMandatoryField rejects user candidates missing any of the fields the
// users table requires.
type UserMandatoryField struct{}

func (UserMandatoryField) Validate(_ context.Context, u *entity.User) error {
	if u.Name == "" || u.Login == "" || u.Email == "" || u.Password == "" {
		return ErrUserMandatoryField
	}
	return nil
}

// EmailFormat rejects user candidates whose email does not parse as an
// RFC 5322 address.
type EmailFormat struct{}

func (EmailFormat) Validate(_ context.Context, u *entity.User) error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrEmailFormat
	}
	return nil
}

// LoginUnchanged rejects updates that try to move a user to a different
// login. The coordinator guarantees the candidate's ID references an
// existing row before the update chain runs.
type LoginUnchanged struct {
	Users repository.UserRepository
}

func NewLoginUnchanged(users repository.UserRepository) LoginUnchanged {
	return LoginUnchanged{Users: users}
}

func (v LoginUnchanged) Validate(ctx context.Context, u *entity.User) error {
	stored, err := v.Users.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	if stored.Login != u.Login {
		return ErrLoginChanged
	}
	return nil
}
