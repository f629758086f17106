package validation

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// UserRoleMandatoryField rejects assignments missing either side of the pair.
type UserRoleMandatoryField struct{}

func (UserRoleMandatoryField) Validate(_ context.Context, ur *entity.UserRole) error {
	if ur.UserID == uuid.Nil || ur.RoleID == uuid.Nil {
		return ErrUserRoleMandatoryField
	}
	return nil
}
