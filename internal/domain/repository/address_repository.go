package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// AddressRepository persists the 1:1 address row keyed by owning user id.
type AddressRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Address, error)
	Save(ctx context.Context, a *entity.Address) error
	Update(ctx context.Context, a *entity.Address) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
