package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	row, ok := r.store.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := r.store.assemble(row)
	return &u, nil
}

func (r *UserRepository) FindAll(_ context.Context, limit, offset int) ([]entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rows := make([]entity.User, 0, len(r.store.users))
	for _, row := range r.store.users {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Login < rows[j].Login })

	if offset >= len(rows) {
		return nil, nil
	}
	rows = rows[offset:]
	if limit < len(rows) {
		rows = rows[:limit]
	}

	out := make([]entity.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, r.store.assemble(row))
	}
	return out, nil
}

func (r *UserRepository) FindByLogin(_ context.Context, login string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.users {
		if row.Login == login {
			u := row
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, row := range r.store.users {
		if row.Email == email {
			u := row
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Save(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, row := range r.store.users {
		if row.Login == u.Login || row.Email == u.Email {
			return fmt.Errorf("%w: login or email", repository.ErrDuplicateKey)
		}
	}

	u.ID = uuid.New()
	u.LastUpdate = time.Now().UTC()
	r.store.users[u.ID] = userRow(u)
	return nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[u.ID]; !ok {
		return repository.ErrNoRowsAffected
	}
	for id, row := range r.store.users {
		if id != u.ID && (row.Login == u.Login || row.Email == u.Email) {
			return fmt.Errorf("%w: login or email", repository.ErrDuplicateKey)
		}
	}

	u.LastUpdate = time.Now().UTC()
	r.store.users[u.ID] = userRow(u)
	return nil
}

func (r *UserRepository) UpdatePassword(_ context.Context, u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	row, ok := r.store.users[u.ID]
	if !ok {
		return repository.ErrNoRowsAffected
	}
	row.Password = u.Password
	row.LastUpdate = time.Now().UTC()
	r.store.users[u.ID] = row
	u.LastUpdate = row.LastUpdate
	return nil
}

func (r *UserRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.users, id)
	delete(r.store.addresses, id)
	delete(r.store.assignments, id)
	return nil
}

// userRow strips the aggregate parts; address and assignments live in their
// own maps.
func userRow(u *entity.User) entity.User {
	return entity.User{
		ID:         u.ID,
		Name:       u.Name,
		Login:      u.Login,
		Email:      u.Email,
		Password:   u.Password,
		LastUpdate: u.LastUpdate,
	}
}

var _ repository.UserRepository = (*UserRepository)(nil)
