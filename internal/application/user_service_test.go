package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/jabaapp/user-service/internal/application/validation"
	"github.com/jabaapp/user-service/internal/domain/entity"
	"github.com/jabaapp/user-service/internal/domain/repository"
	"github.com/jabaapp/user-service/internal/infrastructure/memory"
)

// spyUserRepo counts calls so tests can assert an operation never reached
// the store.
type spyUserRepo struct {
	repository.UserRepository
	findByIDCalls int
	saveCalls     int
	updateCalls   int
	passwordCalls int
	deleteCalls   int
}

func (r *spyUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.findByIDCalls++
	return r.UserRepository.FindByID(ctx, id)
}

func (r *spyUserRepo) Save(ctx context.Context, u *entity.User) error {
	r.saveCalls++
	return r.UserRepository.Save(ctx, u)
}

func (r *spyUserRepo) Update(ctx context.Context, u *entity.User) error {
	r.updateCalls++
	return r.UserRepository.Update(ctx, u)
}

func (r *spyUserRepo) UpdatePassword(ctx context.Context, u *entity.User) error {
	r.passwordCalls++
	return r.UserRepository.UpdatePassword(ctx, u)
}

func (r *spyUserRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	r.deleteCalls++
	return r.UserRepository.DeleteByID(ctx, id)
}

// failingAddressRepo rejects every insert, for exercising the
// no-rollback contract after the user row committed.
type failingAddressRepo struct {
	repository.AddressRepository
}

func (failingAddressRepo) Save(context.Context, *entity.Address) error {
	return errors.New("address store down")
}

func (failingAddressRepo) Update(context.Context, *entity.Address) error {
	return errors.New("address store down")
}

// fakeAggregateCache keeps entries in a map and records every Del so tests
// can assert both read-through hits and invalidation.
type fakeAggregateCache struct {
	entries map[string]UserDTO
	sets    []string
	dels    []string
}

func newFakeAggregateCache() *fakeAggregateCache {
	return &fakeAggregateCache{entries: make(map[string]UserDTO)}
}

func (c *fakeAggregateCache) Get(_ context.Context, key string, dest *UserDTO) (bool, error) {
	dto, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	*dest = dto
	return true, nil
}

func (c *fakeAggregateCache) Set(_ context.Context, key string, dto UserDTO, _ time.Duration) error {
	c.entries[key] = dto
	c.sets = append(c.sets, key)
	return nil
}

func (c *fakeAggregateCache) Del(_ context.Context, key string) error {
	delete(c.entries, key)
	c.dels = append(c.dels, key)
	return nil
}

type UserServiceSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
	users *spyUserRepo
	svc   *UserService

	adminRole entity.Role
	userRole  entity.Role
	guestRole entity.Role
}

func (s *UserServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.users = &spyUserRepo{UserRepository: s.store.Users()}

	s.adminRole = entity.Role{ID: uuid.New(), Name: "admin"}
	s.userRole = entity.Role{ID: uuid.New(), Name: "user"}
	s.guestRole = entity.Role{ID: uuid.New(), Name: "guest"}
	s.store.SeedRole(s.adminRole)
	s.store.SeedRole(s.userRole)
	s.store.SeedRole(s.guestRole)

	addressSvc := NewAddressService(s.store.Addresses(), []validation.CreateAddressValidation{
		validation.AddressMandatoryField{},
	})
	userRoleSvc := NewUserRoleService(s.store.UserRoles(), []validation.CreateUserRoleValidation{
		validation.UserRoleMandatoryField{},
	})

	s.svc = NewUserService(
		s.users,
		addressSvc,
		userRoleSvc,
		NewMapper(s.store.Roles()),
		[]validation.CreateUserValidation{
			validation.UserMandatoryField{},
			validation.EmailFormat{},
		},
		[]validation.UpdateUserValidation{
			validation.UserMandatoryField{},
			validation.EmailFormat{},
			validation.NewLoginUnchanged(s.users),
		},
		[]validation.UpdatePasswordValidation{
			validation.NewPasswordMatch{},
		},
		nil,
	)
}

func TestUserServiceSuite(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) validUser(login string) UserDTO {
	return UserDTO{
		Name:     "Some Person",
		Login:    login,
		Email:    login + "@example.com",
		Password: "secret123",
	}
}

func (s *UserServiceSuite) mustCreate(dto UserDTO) UserDTO {
	created, err := s.svc.Save(s.ctx, dto)
	s.Require().NoError(err)
	s.Require().NotEmpty(created.ID)
	return created
}

func roleNames(dto UserDTO) []string {
	names := make([]string, 0, len(dto.Roles))
	for _, r := range dto.Roles {
		names = append(names, r.Name)
	}
	return names
}

func (s *UserServiceSuite) TestFindAll() {
	s.Run("rejects page below one", func() {
		_, err := s.svc.FindAll(s.ctx, 0, 10)
		s.Require().ErrorIs(err, validation.ErrInvalidPage)
	})

	s.Run("rejects negative size", func() {
		_, err := s.svc.FindAll(s.ctx, 1, -1)
		s.Require().ErrorIs(err, validation.ErrInvalidSize)
	})

	s.Run("pages are one-based and ordered by login", func() {
		s.mustCreate(s.validUser("alice"))
		s.mustCreate(s.validUser("bob"))
		s.mustCreate(s.validUser("carol"))

		page, err := s.svc.FindAll(s.ctx, 2, 2)
		s.Require().NoError(err)
		s.Require().Len(page, 1)
		s.Equal("carol", page[0].Login)
	})

	s.Run("zero size yields an empty page", func() {
		got, err := s.svc.FindAll(s.ctx, 1, 0)
		s.Require().NoError(err)
		s.Empty(got)
	})
}

func (s *UserServiceSuite) TestSave() {
	s.Run("creates a bare user without address or roles", func() {
		created := s.mustCreate(s.validUser("plain"))
		s.Empty(created.Password, "password must not leave the service")
		s.Nil(created.Address)
		s.Empty(created.Roles)
		s.NotNil(created.LastUpdate)
	})

	s.Run("keys the address by the generated user id", func() {
		dto := s.validUser("homeowner")
		dto.Address = &AddressDTO{Street: "Main St", City: "Springfield", Zip: "12345", Number: "7"}

		created := s.mustCreate(dto)

		id := uuid.MustParse(created.ID)
		stored, err := s.store.Addresses().FindByUserID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(id, stored.UserID)
		s.Equal("Main St", stored.Street)
	})

	s.Run("resolves roles by name", func() {
		dto := s.validUser("operator")
		dto.Roles = []RoleDTO{{Name: "admin"}, {Name: "user"}}

		created := s.mustCreate(dto)
		s.ElementsMatch([]string{"admin", "user"}, roleNames(created))
	})

	s.Run("rejects unknown role names", func() {
		dto := s.validUser("nobody")
		dto.Roles = []RoleDTO{{Name: "superuser"}}

		_, err := s.svc.Save(s.ctx, dto)
		s.Require().ErrorIs(err, ErrRoleNotFound)
	})

	s.Run("rejects missing mandatory fields", func() {
		dto := s.validUser("incomplete")
		dto.Password = ""

		_, err := s.svc.Save(s.ctx, dto)
		s.Require().ErrorIs(err, validation.ErrUserMandatoryField)
	})

	s.Run("rejects malformed email", func() {
		dto := s.validUser("badmail")
		dto.Email = "not-an-email"

		_, err := s.svc.Save(s.ctx, dto)
		s.Require().ErrorIs(err, validation.ErrEmailFormat)
	})

	s.Run("reports a login conflict", func() {
		s.mustCreate(s.validUser("taken"))

		dup := s.validUser("taken")
		dup.Email = "other@example.com"
		_, err := s.svc.Save(s.ctx, dup)
		s.Require().ErrorIs(err, ErrLoginInUse)
	})

	s.Run("reports an email conflict", func() {
		s.mustCreate(s.validUser("original"))

		dup := s.validUser("different")
		dup.Email = "original@example.com"
		_, err := s.svc.Save(s.ctx, dup)
		s.Require().ErrorIs(err, ErrEmailInUse)
	})

	s.Run("user row survives an address store failure", func() {
		s.svc.Addresses = NewAddressService(
			failingAddressRepo{AddressRepository: s.store.Addresses()},
			[]validation.CreateAddressValidation{validation.AddressMandatoryField{}},
		)

		dto := s.validUser("unlucky")
		dto.Address = &AddressDTO{Street: "Broken Rd"}

		_, err := s.svc.Save(s.ctx, dto)
		s.Require().ErrorIs(err, ErrSaveAddress)

		stored, err := s.store.Users().FindByLogin(s.ctx, "unlucky")
		s.Require().NoError(err, "user row must not be rolled back")
		s.Equal("unlucky", stored.Login)
	})
}

func (s *UserServiceSuite) TestFindByID() {
	s.Run("rejects the zero id", func() {
		_, err := s.svc.FindByID(s.ctx, uuid.Nil)
		s.Require().ErrorIs(err, ErrIDRequired)
	})

	s.Run("reports unknown users", func() {
		_, err := s.svc.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, ErrUserNotFound)
	})

	s.Run("returns the full aggregate", func() {
		dto := s.validUser("full")
		dto.Address = &AddressDTO{Street: "Side St"}
		dto.Roles = []RoleDTO{{Name: "guest"}}
		created := s.mustCreate(dto)

		got, err := s.svc.FindByID(s.ctx, uuid.MustParse(created.ID))
		s.Require().NoError(err)
		s.Equal("full", got.Login)
		s.Require().NotNil(got.Address)
		s.Equal("Side St", got.Address.Street)
		s.ElementsMatch([]string{"guest"}, roleNames(got))
		s.Empty(got.Password)
	})
}

func (s *UserServiceSuite) TestUpdate() {
	s.Run("rejects the zero id", func() {
		_, err := s.svc.Update(s.ctx, uuid.Nil, s.validUser("x"))
		s.Require().ErrorIs(err, ErrIDRequired)
	})

	s.Run("reports unknown users", func() {
		_, err := s.svc.Update(s.ctx, uuid.New(), s.validUser("ghost"))
		s.Require().ErrorIs(err, ErrUserNotFound)
	})

	s.Run("preserves the stored password", func() {
		created := s.mustCreate(s.validUser("keeper"))
		id := uuid.MustParse(created.ID)

		upd := s.validUser("keeper")
		upd.Name = "Renamed"
		upd.Password = "attempted-change"
		_, err := s.svc.Update(s.ctx, id, upd)
		s.Require().NoError(err)

		stored, err := s.store.Users().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("secret123", stored.Password)
		s.Equal("Renamed", stored.Name)
	})

	s.Run("rejects a login change", func() {
		created := s.mustCreate(s.validUser("fixed"))

		upd := s.validUser("moved")
		upd.Email = "fixed@example.com"
		_, err := s.svc.Update(s.ctx, uuid.MustParse(created.ID), upd)
		s.Require().ErrorIs(err, validation.ErrLoginChanged)
	})

	s.Run("omitting the address removes it", func() {
		dto := s.validUser("mover")
		dto.Address = &AddressDTO{Street: "Old Home"}
		created := s.mustCreate(dto)
		id := uuid.MustParse(created.ID)

		updated, err := s.svc.Update(s.ctx, id, s.validUser("mover"))
		s.Require().NoError(err)
		s.Nil(updated.Address)

		_, err = s.store.Addresses().FindByUserID(s.ctx, id)
		s.Require().ErrorIs(err, repository.ErrNotFound)
	})

	s.Run("adds an address the user did not have", func() {
		created := s.mustCreate(s.validUser("settler"))
		id := uuid.MustParse(created.ID)

		upd := s.validUser("settler")
		upd.Address = &AddressDTO{Street: "New Home"}
		updated, err := s.svc.Update(s.ctx, id, upd)
		s.Require().NoError(err)
		s.Require().NotNil(updated.Address)
		s.Equal("New Home", updated.Address.Street)
	})

	s.Run("keeps the address id when updating in place", func() {
		dto := s.validUser("stayer")
		dto.Address = &AddressDTO{Street: "First St"}
		created := s.mustCreate(dto)
		id := uuid.MustParse(created.ID)

		before, err := s.store.Addresses().FindByUserID(s.ctx, id)
		s.Require().NoError(err)

		upd := s.validUser("stayer")
		upd.Address = &AddressDTO{Street: "Second St"}
		updated, err := s.svc.Update(s.ctx, id, upd)
		s.Require().NoError(err)
		s.Require().NotNil(updated.Address)
		s.Equal(before.ID.String(), updated.Address.ID)
		s.Equal("Second St", updated.Address.Street)
	})

	s.Run("replaces the role set wholesale", func() {
		dto := s.validUser("promoted")
		dto.Roles = []RoleDTO{{Name: "admin"}, {Name: "user"}}
		created := s.mustCreate(dto)
		id := uuid.MustParse(created.ID)

		upd := s.validUser("promoted")
		upd.Roles = []RoleDTO{{Name: "user"}, {Name: "guest"}}
		updated, err := s.svc.Update(s.ctx, id, upd)
		s.Require().NoError(err)
		s.ElementsMatch([]string{"user", "guest"}, roleNames(updated))

		got, err := s.store.Users().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Len(got.Roles, 2)
	})

	s.Run("user row survives an address store failure", func() {
		dto := s.validUser("halfway")
		dto.Address = &AddressDTO{Street: "Stable St"}
		created := s.mustCreate(dto)
		id := uuid.MustParse(created.ID)

		s.svc.Addresses = NewAddressService(
			failingAddressRepo{AddressRepository: s.store.Addresses()},
			[]validation.CreateAddressValidation{validation.AddressMandatoryField{}},
		)

		upd := s.validUser("halfway")
		upd.Name = "Half Updated"
		upd.Address = &AddressDTO{Street: "Unreachable"}
		_, err := s.svc.Update(s.ctx, id, upd)
		s.Require().ErrorIs(err, ErrSaveAddress)

		stored, err := s.store.Users().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("Half Updated", stored.Name, "user row keeps the committed update")
	})
}

func (s *UserServiceSuite) TestUpdatePassword() {
	s.Run("mismatch fails before any store access", func() {
		created := s.mustCreate(s.validUser("careful"))
		callsBefore := s.users.findByIDCalls

		_, err := s.svc.UpdatePassword(s.ctx, uuid.MustParse(created.ID), UpdatePasswordDTO{
			OldPassword:       "secret123",
			NewPassword:       "new-one",
			RepeatNewPassword: "different",
		})
		s.Require().ErrorIs(err, validation.ErrPasswordMismatch)
		s.Equal(callsBefore, s.users.findByIDCalls)
		s.Zero(s.users.passwordCalls)
	})

	s.Run("match validation outranks the id check", func() {
		_, err := s.svc.UpdatePassword(s.ctx, uuid.Nil, UpdatePasswordDTO{
			NewPassword:       "a",
			RepeatNewPassword: "b",
		})
		s.Require().ErrorIs(err, validation.ErrPasswordMismatch)
	})

	s.Run("rejects a wrong old password", func() {
		created := s.mustCreate(s.validUser("guarded"))

		_, err := s.svc.UpdatePassword(s.ctx, uuid.MustParse(created.ID), UpdatePasswordDTO{
			OldPassword:       "wrong",
			NewPassword:       "next",
			RepeatNewPassword: "next",
		})
		s.Require().ErrorIs(err, ErrInvalidPassword)
	})

	s.Run("swaps the stored password", func() {
		created := s.mustCreate(s.validUser("rotator"))
		id := uuid.MustParse(created.ID)

		_, err := s.svc.UpdatePassword(s.ctx, id, UpdatePasswordDTO{
			OldPassword:       "secret123",
			NewPassword:       "rotated",
			RepeatNewPassword: "rotated",
		})
		s.Require().NoError(err)

		stored, err := s.store.Users().FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("rotated", stored.Password)
	})
}

func (s *UserServiceSuite) TestAggregateCaching() {
	cache := newFakeAggregateCache()
	s.svc.Cache = cache

	created := s.mustCreate(s.validUser("cached"))
	id := uuid.MustParse(created.ID)
	key := aggregateCacheKey(id)

	s.Run("read-through populates and serves the cache", func() {
		got, err := s.svc.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal("cached", got.Login)
		s.Contains(cache.sets, key)

		callsBefore := s.users.findByIDCalls
		again, err := s.svc.FindByID(s.ctx, id)
		s.Require().NoError(err)
		s.Equal(got, again)
		s.Equal(callsBefore, s.users.findByIDCalls, "second read must come from the cache")
	})

	s.Run("update drops the cached aggregate", func() {
		cache.dels = nil
		upd := s.validUser("cached")
		upd.Name = "Renamed"
		_, err := s.svc.Update(s.ctx, id, upd)
		s.Require().NoError(err)
		s.Contains(cache.dels, key)
		s.NotContains(cache.entries, key)
	})

	s.Run("password change drops the cached aggregate", func() {
		_, err := s.svc.FindByID(s.ctx, id)
		s.Require().NoError(err)
		cache.dels = nil

		_, err = s.svc.UpdatePassword(s.ctx, id, UpdatePasswordDTO{
			OldPassword:       "secret123",
			NewPassword:       "rotated",
			RepeatNewPassword: "rotated",
		})
		s.Require().NoError(err)
		s.Contains(cache.dels, key)
		s.NotContains(cache.entries, key)
	})

	s.Run("delete drops the cached aggregate", func() {
		_, err := s.svc.FindByID(s.ctx, id)
		s.Require().NoError(err)
		cache.dels = nil

		s.Require().NoError(s.svc.DeleteByID(s.ctx, id))
		s.Contains(cache.dels, key)
		s.NotContains(cache.entries, key)
	})
}

func (s *UserServiceSuite) TestDeleteByID() {
	s.Run("rejects the zero id", func() {
		err := s.svc.DeleteByID(s.ctx, uuid.Nil)
		s.Require().ErrorIs(err, ErrIDRequired)
	})

	s.Run("reports unknown users without touching the store", func() {
		err := s.svc.DeleteByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, ErrUserNotFound)
		s.Zero(s.users.deleteCalls)
	})

	s.Run("removes the aggregate", func() {
		dto := s.validUser("leaver")
		dto.Address = &AddressDTO{Street: "Nowhere"}
		dto.Roles = []RoleDTO{{Name: "user"}}
		created := s.mustCreate(dto)
		id := uuid.MustParse(created.ID)

		s.Require().NoError(s.svc.DeleteByID(s.ctx, id))

		_, err := s.store.Users().FindByID(s.ctx, id)
		s.Require().ErrorIs(err, repository.ErrNotFound)
		_, err = s.store.Addresses().FindByUserID(s.ctx, id)
		s.Require().ErrorIs(err, repository.ErrNotFound)
	})
}
