package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the aggregate root. The address and the role set live in their own
// tables; services assemble them around the user row. ID and LastUpdate are
// assigned by the store on every successful write, never by callers.
type User struct {
	ID         uuid.UUID
	Name       string
	Login      string
	Email      string
	Password   string
	Roles      []Role
	Address    *Address
	LastUpdate time.Time
}

// HasRole reports whether the user carries the role with the given id.
func (u *User) HasRole(roleID uuid.UUID) bool {
	for _, r := range u.Roles {
		if r.ID == roleID {
			return true
		}
	}
	return false
}
