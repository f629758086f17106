package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jabaapp/user-service/internal/container"
	handlers "github.com/jabaapp/user-service/internal/interface/http"
	"github.com/jabaapp/user-service/internal/interface/middleware"
)

// AuthModule wires the token endpoint: POST /api/v1/auth/login
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
}
