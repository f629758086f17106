package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jabaapp/user-service/internal/application/validation"
	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
)

// AddressService owns the address sub-entity of the user aggregate. All
// branching between insert, update and delete lives here, keyed by the
// owning user id.
type AddressService struct {
	Repo        repository.AddressRepository
	Validations []validation.CreateAddressValidation
}

func NewAddressService(repo repository.AddressRepository, validations []validation.CreateAddressValidation) *AddressService {
	return &AddressService{Repo: repo, Validations: validations}
}

// Save validates and inserts a new address.
func (s *AddressService) Save(ctx context.Context, a *entity.Address) (*entity.Address, error) {
	for _, v := range s.Validations {
		if err := v.Validate(ctx, a); err != nil {
			return nil, err
		}
	}
	if err := s.Repo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveAddress, err)
	}
	return a, nil
}

// Update reconciles the user's address with the supplied target state.
// A nil address means the user ends up with none; an address for a user
// who has none is inserted; otherwise the existing row is updated in place,
// keeping its identifier.
func (s *AddressService) Update(ctx context.Context, userID uuid.UUID, a *entity.Address) (*entity.Address, error) {
	if a == nil {
		if err := s.Repo.DeleteByUserID(ctx, userID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSaveAddress, err)
		}
		return nil, nil
	}

	a.UserID = userID
	for _, v := range s.Validations {
		if err := v.Validate(ctx, a); err != nil {
			return nil, err
		}
	}

	existing, err := s.Repo.FindByUserID(ctx, userID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		// First address for this user, treat the update as a create.
		if err := s.Repo.Save(ctx, a); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSaveAddress, err)
		}
		return a, nil
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrSaveAddress, err)
	}

	a.ID = existing.ID
	if err := s.Repo.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSaveAddress, err)
	}
	return a, nil
}

// DeleteByUserID removes the user's address if one exists.
func (s *AddressService) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return s.Repo.DeleteByUserID(ctx, userID)
}
