package entity

import "github.com/google/uuid"

// Role is shared reference data. Users reference roles, they never own them.
type Role struct {
	ID   uuid.UUID
	Name string
}
