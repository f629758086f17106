package router

import (
	userapp "github.com/jabaapp/user-service/internal/application"
	"github.com/jabaapp/user-service/internal/application/validation"
	"github.com/jabaapp/user-service/internal/container"
	pginfra "github.com/jabaapp/user-service/internal/infrastructure/postgres"
	handlers "github.com/jabaapp/user-service/internal/interface/http"
	"github.com/jabaapp/user-service/internal/router/modules"
)

type UserModuleDeps struct {
	Service *userapp.UserService
	Users   *handlers.UserHandler
	Roles   *handlers.RoleHandler
	Auth    *handlers.AuthHandler
}

func buildUserDeps() UserModuleDeps {
	pool := container.GetPGPool()
	users := pginfra.NewUserRepository(pool)
	addresses := pginfra.NewAddressRepository(pool)
	roles := pginfra.NewRoleRepository(pool)
	userRoles := pginfra.NewUserRoleRepository(pool)

	mapper := userapp.NewMapper(roles)

	addressSvc := userapp.NewAddressService(addresses, []validation.CreateAddressValidation{
		validation.AddressMandatoryField{},
	})
	userRoleSvc := userapp.NewUserRoleService(userRoles, []validation.CreateUserRoleValidation{
		validation.UserRoleMandatoryField{},
	})

	service := userapp.NewUserService(
		users,
		addressSvc,
		userRoleSvc,
		mapper,
		[]validation.CreateUserValidation{
			validation.UserMandatoryField{},
			validation.EmailFormat{},
		},
		[]validation.UpdateUserValidation{
			validation.UserMandatoryField{},
			validation.EmailFormat{},
			validation.NewLoginUnchanged(users),
		},
		[]validation.UpdatePasswordValidation{
			validation.NewPasswordMatch{},
		},
		container.GetLogger(),
	)
	if rdb := container.GetRedis(); rdb != nil {
		service.Cache = userapp.NewRedisCache(rdb)
	}
	service.CacheTTL = container.GetConfig().CacheTTL
	service.Events = container.GetRabbitPub()
	service.ES = container.GetES()
	service.ESUsersIndex = container.GetConfig().ESUsersIndex

	return UserModuleDeps{
		Service: service,
		Users:   handlers.NewUserHandler(service, container.GetLogger()),
		Roles:   handlers.NewRoleHandler(userapp.NewRoleService(roles)),
		Auth:    handlers.NewAuthHandler(userapp.NewAuthService(users), container.GetJWT(), container.GetLogger()),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildUserDeps()
	r.Add(modules.NewUserModule(deps.Users, deps.Roles))
	if container.GetConfig().AuthEnabled {
		r.Add(modules.NewAuthModule(deps.Auth))
	}
}
