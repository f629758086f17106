package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// UserRepository is the data-access boundary for the primary user row.
// Save assigns ID and LastUpdate; Update and UpdatePassword refresh
// LastUpdate. Write failures surface as ErrNoRowsAffected, uniqueness
// violations as ErrDuplicateKey.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]entity.User, error)
	FindByLogin(ctx context.Context, login string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Save(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, u *entity.User) error
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
