package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/jabaapp/user-service/internal/application"
	"github.com/jabaapp/user-service/pkg/helpers"
	"github.com/jabaapp/user-service/pkg/response"
	"github.com/jabaapp/user-service/pkg/validation"
)

// AuthHandler issues bearer tokens for the protected routes.
type AuthHandler struct {
	Svc    *userapp.AuthService
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthHandler(svc *userapp.AuthService, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, JWT: jwt, Logger: logger}
}

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	user, err := h.Svc.Authenticate(c.Request.Context(), req.Login, req.Password)
	if err != nil {
		h.Logger.WithField("login", req.Login).Warn("failed login attempt")
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, exp, err := h.JWT.GenerateAccessToken(user.ID.String(), user.Login)
	if err != nil {
		h.Logger.WithError(err).Error("token generation failed")
		response.Error(c, http.StatusInternalServerError, "failed to issue token", nil)
		return
	}

	response.Success(c, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "Bearer",
	}, "login successful", map[string]any{"expires_at": exp})
}
