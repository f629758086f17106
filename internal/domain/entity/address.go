package entity

import "github.com/google/uuid"

// Address is owned 1:1 by a user via UserID. It never exists without its
// owning user and is created or dropped as part of user writes.
type Address struct {
	ID     uuid.UUID
	Street string
	City   string
	State  string
	Zip    string
	Number string
	UserID uuid.UUID
}
