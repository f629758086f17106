package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

// RoleService reads role reference data.
type RoleService struct {
	Repo repository.RoleRepository
}

func NewRoleService(repo repository.RoleRepository) *RoleService {
	return &RoleService{Repo: repo}
}

func (s *RoleService) GetByName(ctx context.Context, name string) (*entity.Role, error) {
	role, err := s.Repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, name)
	}
	return role, nil
}

func (s *RoleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Role, error) {
	role, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, id)
	}
	return role, nil
}

func (s *RoleService) FindAll(ctx context.Context) ([]entity.Role, error) {
	return s.Repo.FindAll(ctx)
}
