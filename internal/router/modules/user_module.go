package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jabaapp/user-service/internal/container"
	handlers "github.com/jabaapp/user-service/internal/interface/http"
	"github.com/jabaapp/user-service/internal/interface/middleware"
)

// UserModule wires the user aggregate routes.
// Reads:  GET /api/v1/users, GET /api/v1/users/:id, GET /api/v1/users/search, GET /api/v1/roles
// Writes: POST /api/v1/users, PUT /api/v1/users/:id, PATCH /api/v1/users/:id/password, DELETE /api/v1/users/:id
// Writes sit behind the bearer-token guard when AUTH_ENABLED is set.
type UserModule struct {
	Users *handlers.UserHandler
	Roles *handlers.RoleHandler
}

func NewUserModule(users *handlers.UserHandler, roles *handlers.RoleHandler) *UserModule {
	return &UserModule{Users: users, Roles: roles}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	cfg := container.GetConfig()
	rdb := container.GetRedis()

	readLimiter := middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	writeLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	reads := rg.Group("/")
	reads.Use(readLimiter)
	{
		reads.GET("/users", m.Users.List)
		reads.GET("/users/search", m.Users.Search)
		reads.GET("/users/:id", m.Users.Get)
		reads.GET("/roles", m.Roles.List)
	}

	writes := rg.Group("/")
	writes.Use(writeLimiter)
	if cfg.AuthEnabled {
		writes.Use(middleware.Auth(container.GetJWT()))
	}
	{
		writes.POST("/users", m.Users.Create)
		writes.PUT("/users/:id", m.Users.Update)
		writes.PATCH("/users/:id/password", m.Users.UpdatePassword)
		writes.DELETE("/users/:id", m.Users.Delete)
	}
}
