package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

type UserRoleRepository struct {
	store *Store
}

func (r *UserRoleRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]entity.UserRole, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var assignments []entity.UserRole
	for roleID := range r.store.assignments[userID] {
		assignments = append(assignments, entity.UserRole{UserID: userID, RoleID: roleID})
	}
	return assignments, nil
}

func (r *UserRoleRepository) Save(_ context.Context, ur *entity.UserRole) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	set, ok := r.store.assignments[ur.UserID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		r.store.assignments[ur.UserID] = set
	}
	if _, exists := set[ur.RoleID]; exists {
		return repository.ErrDuplicateKey
	}
	set[ur.RoleID] = struct{}{}
	return nil
}

func (r *UserRoleRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.assignments, userID)
	return nil
}

var _ repository.UserRoleRepository = (*UserRoleRepository)(nil)
