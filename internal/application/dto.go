package application

import "time"

// DTOs exchanged with the presentation layer. IDs travel as strings so the
// transport never depends on uuid internals; the mapper owns parsing.

type UserDTO struct {
	ID         string      `json:"id,omitempty"`
	Name       string      `json:"name"`
	Login      string      `json:"login"`
	Email      string      `json:"email"`
	Password   string      `json:"password,omitempty"`
	Roles      []RoleDTO   `json:"roles,omitempty"`
	Address    *AddressDTO `json:"address,omitempty"`
	LastUpdate *time.Time  `json:"last_update,omitempty"`
}

type AddressDTO struct {
	ID     string `json:"id,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
	Number string `json:"number"`
}

type RoleDTO struct {
	Name string `json:"name"`
}

type UpdatePasswordDTO struct {
	OldPassword       string `json:"old_password"`
	NewPassword       string `json:"new_password"`
	RepeatNewPassword string `json:"repeat_new_password"`
}
