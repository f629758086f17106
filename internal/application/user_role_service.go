package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/application/validation"
	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

// UserRoleService owns the user's role-assignment set. Updates replace the
// whole set: delete everything, then insert the target pairs one by one.
// Assignment identity is not preserved, only membership.
type UserRoleService struct {
	Repo        repository.UserRoleRepository
	Validations []validation.CreateUserRoleValidation
}

func NewUserRoleService(repo repository.UserRoleRepository, validations []validation.CreateUserRoleValidation) *UserRoleService {
	return &UserRoleService{Repo: repo, Validations: validations}
}

// Save validates and inserts a single assignment.
func (s *UserRoleService) Save(ctx context.Context, ur *entity.UserRole) (*entity.UserRole, error) {
	for _, v := range s.Validations {
		if err := v.Validate(ctx, ur); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Save(ctx, ur); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveUserRole, err)
	}
	return ur, nil
}

// Update replaces the user's assignments with one per target role. The first
// insert failure aborts the remaining inserts; earlier inserts stay.
func (s *UserRoleService) Update(ctx context.Context, userID uuid.UUID, roles []entity.Role) ([]entity.UserRole, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("%w: user id is required", ErrSaveUserRole)
	}

	if err := s.Repo.DeleteByUserID(ctx, userID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveUserRole, err)
	}

	assignments := make([]entity.UserRole, 0, len(roles))
	for _, role := range roles {
		ur, err := s.Save(ctx, &entity.UserRole{UserID: userID, RoleID: role.ID})
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *ur)
	}
	return assignments, nil
}

// FindByUserID loads the user's current assignments.
func (s *UserRoleService) FindByUserID(ctx context.Context, userID uuid.UUID) ([]entity.UserRole, error) {
	return s.Repo.FindByUserID(ctx, userID)
}
