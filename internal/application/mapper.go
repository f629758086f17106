package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

// Mapper translates between DTOs and entities. Going inward it clears the
// server-owned fields (ID, LastUpdate) and resolves role names against the
// role table; going outward it suppresses the password.
type Mapper struct {
	Roles repository.RoleRepository
}

func NewMapper(roles repository.RoleRepository) *Mapper {
	return &Mapper{Roles: roles}
}

// ToEntity builds a user candidate from caller input. The store assigns ID
// and LastUpdate, so whatever the caller sent for those is discarded.
func (m *Mapper) ToEntity(ctx context.Context, dto UserDTO) (*entity.User, error) {
	u := &entity.User{
		Name:     dto.Name,
		Login:    dto.Login,
		Email:    dto.Email,
		Password: dto.Password,
	}
	if dto.Address != nil {
		u.Address = &entity.Address{
			Street: dto.Address.Street,
			City:   dto.Address.City,
			State:  dto.Address.State,
			Zip:    dto.Address.Zip,
			Number: dto.Address.Number,
		}
	}
	for _, r := range dto.Roles {
		role, err := m.Roles.FindByName(ctx, r.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRoleNotFound, r.Name)
		}
		u.Roles = append(u.Roles, *role)
	}
	return u, nil
}

// ToUpdatePassword maps the transient password-change request.
func (m *Mapper) ToUpdatePassword(dto UpdatePasswordDTO) *entity.UpdatePassword {
	return &entity.UpdatePassword{
		OldPassword:       dto.OldPassword,
		NewPassword:       dto.NewPassword,
		RepeatNewPassword: dto.RepeatNewPassword,
	}
}

// ToDTO maps a stored user outward. The password never leaves the service.
func (m *Mapper) ToDTO(u *entity.User) UserDTO {
	dto := UserDTO{
		Name:  u.Name,
		Login: u.Login,
		Email: u.Email,
	}
	if u.ID != uuid.Nil {
		dto.ID = u.ID.String()
	}
	if !u.LastUpdate.IsZero() {
		t := u.LastUpdate
		dto.LastUpdate = &t
	}
	if u.Address != nil {
		dto.Address = &AddressDTO{
			ID:     u.Address.ID.String(),
			Street: u.Address.Street,
			City:   u.Address.City,
			State:  u.Address.State,
			Zip:    u.Address.Zip,
			Number: u.Address.Number,
		}
	}
	for _, r := range u.Roles {
		dto.Roles = append(dto.Roles, RoleDTO{Name: r.Name})
	}
	return dto
}
