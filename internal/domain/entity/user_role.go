package entity

import "github.com/google/uuid"

// UserRole is a user-to-role assignment. It has no identity of its own,
// existence of the (UserID, RoleID) pair is the whole fact.
type UserRole struct {
	UserID uuid.UUID
	RoleID uuid.UUID
}
