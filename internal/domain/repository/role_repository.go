package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// RoleRepository reads role reference data. Roles are seeded out of band and
// never mutated through this service.
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindAll(ctx context.Context) ([]entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
}
