package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

type AddressRepository struct {
	store *Store
}

func (r *AddressRepository) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.Address, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	addr, ok := r.store.addresses[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	a := addr
	return &a, nil
}

func (r *AddressRepository) Save(_ context.Context, a *entity.Address) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.addresses[a.UserID]; ok {
		return repository.ErrDuplicateKey
	}
	a.ID = uuid.New()
	r.store.addresses[a.UserID] = *a
	return nil
}

func (r *AddressRepository) Update(_ context.Context, a *entity.Address) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.addresses[a.UserID]
	if !ok || existing.ID != a.ID {
		return repository.ErrNoRowsAffected
	}
	r.store.addresses[a.UserID] = *a
	return nil
}

func (r *AddressRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.addresses, userID)
	return nil
}

var _ repository.AddressRepository = (*AddressRepository)(nil)
