package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// UserRoleRepository persists role assignments. The application layer always
// replaces a user's whole set with DeleteByUserID followed by Saves.
type UserRoleRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error)
	Save(ctx context.Context, ur *entity.UserRole) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
