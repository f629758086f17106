package validation

import (
	"context"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// NewPasswordMatch rejects password changes where the confirmation does not
// repeat the new password exactly.
type NewPasswordMatch struct{}

func (NewPasswordMatch) Validate(_ context.Context, up *entity.UpdatePassword) error {
	if up.NewPassword != up.RepeatNewPassword {
		return ErrPasswordMismatch
	}
	return nil
}
