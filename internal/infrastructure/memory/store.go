// Package memory provides mutex-guarded in-memory implementations of the
// repository contracts. They back the application-layer tests and local
// runs without postgres, and mirror the SQL implementations' error
// conventions (ErrNotFound, ErrNoRowsAffected, ErrDuplicateKey).
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
)

// Store holds all four tables behind one lock so aggregate reads see a
// consistent snapshot, the closest in-memory analogue to the SQL joins.
type Store struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]entity.User
	addresses   map[uuid.UUID]entity.Address // keyed by owning user id
	roles       map[uuid.UUID]entity.Role
	assignments map[uuid.UUID]map[uuid.UUID]struct{} // user id -> role ids
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]entity.User),
		addresses:   make(map[uuid.UUID]entity.Address),
		roles:       make(map[uuid.UUID]entity.Role),
		assignments: make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
}

func (s *Store) Users() *UserRepository         { return &UserRepository{store: s} }
func (s *Store) Addresses() *AddressRepository  { return &AddressRepository{store: s} }
func (s *Store) Roles() *RoleRepository         { return &RoleRepository{store: s} }
func (s *Store) UserRoles() *UserRoleRepository { return &UserRoleRepository{store: s} }

// SeedRole inserts reference data directly; roles are never written through
// the repositories.
func (s *Store) SeedRole(role entity.Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[role.ID] = role
}

// assemble builds the aggregate view of a stored user row. Callers must
// hold at least a read lock.
func (s *Store) assemble(row entity.User) entity.User {
	if addr, ok := s.addresses[row.ID]; ok {
		a := addr
		row.Address = &a
	}
	for roleID := range s.assignments[row.ID] {
		if role, ok := s.roles[roleID]; ok {
			row.Roles = append(row.Roles, role)
		}
	}
	return row
}
