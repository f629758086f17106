package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

type RoleRepository struct {
	store *Store
}

func (r *RoleRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	role, ok := r.store.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := role
	return &out, nil
}

func (r *RoleRepository) FindAll(_ context.Context) ([]entity.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	roles := make([]entity.Role, 0, len(r.store.roles))
	for _, role := range r.store.roles {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].Name < roles[j].Name })
	return roles, nil
}

func (r *RoleRepository) FindByName(_ context.Context, name string) (*entity.Role, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, role := range r.store.roles {
		if role.Name == name {
			out := role
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

var _ repository.RoleRepository = (*RoleRepository)(nil)
