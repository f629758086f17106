package validation

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// AddressMandatoryField rejects addresses without an owning user id.
// The user service sets UserID itself before handing the address over, so
// this only fires for malformed direct calls.
type AddressMandatoryField struct{}

func (AddressMandatoryField) Validate(_ context.Context, a *entity.Address) error {
	if a.UserID == uuid.Nil {
		return ErrAddressMandatoryField
	}
	return nil
}
