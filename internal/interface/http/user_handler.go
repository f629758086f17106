package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	userapp "github.com/jabaapp/user-service/internal/application"
	appvalidation "github.com/jabaapp/user-service/internal/application/validation"
	"github.com/jabaapp/user-service/pkg/response"
	"github.com/jabaapp/user-service/pkg/validation"
)

// UserHandler exposes the user aggregate over HTTP.
type UserHandler struct {
	Svc    *userapp.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// statusFor maps application errors to HTTP status codes. Validation
// failures are 400; missing aggregates, a missing id and a wrong old
// password are 404; login/email collisions 409; persistence failures
// after a successful primary write 422.
func statusFor(err error) int {
	switch {
	case errors.Is(err, appvalidation.ErrInvalidPage),
		errors.Is(err, appvalidation.ErrInvalidSize),
		errors.Is(err, appvalidation.ErrUserMandatoryField),
		errors.Is(err, appvalidation.ErrEmailFormat),
		errors.Is(err, appvalidation.ErrLoginChanged),
		errors.Is(err, appvalidation.ErrAddressMandatoryField),
		errors.Is(err, appvalidation.ErrUserRoleMandatoryField),
		errors.Is(err, appvalidation.ErrPasswordMismatch):
		return http.StatusBadRequest
	case errors.Is(err, userapp.ErrUserNotFound),
		errors.Is(err, userapp.ErrRoleNotFound),
		errors.Is(err, userapp.ErrIDRequired),
		errors.Is(err, userapp.ErrInvalidPassword):
		return http.StatusNotFound
	case errors.Is(err, userapp.ErrLoginInUse),
		errors.Is(err, userapp.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, userapp.ErrSaveUser),
		errors.Is(err, userapp.ErrUpdateUser),
		errors.Is(err, userapp.ErrUpdatePassword),
		errors.Is(err, userapp.ErrSaveAddress),
		errors.Is(err, userapp.ErrSaveUserRole):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	response.Error(c, statusFor(err), err.Error(), nil)
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid user id", map[string]string{"id": "must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameter", map[string]string{name: "must be an integer"})
		return 0, false
	}
	return v, true
}

func (h *UserHandler) List(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		return
	}
	size, ok := queryInt(c, "size", 20)
	if !ok {
		return
	}

	users, err := h.Svc.FindAll(c.Request.Context(), page, size)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, users, "users", map[string]any{"page": page, "size": size})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := h.Svc.FindByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "user", nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var dto userapp.UserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	created, err := h.Svc.Save(c.Request.Context(), dto)
	if err != nil {
		h.Logger.WithError(err).WithField("login", dto.Login).Warn("create user failed")
		fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created, "user created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var dto userapp.UserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	updated, err := h.Svc.Update(c.Request.Context(), id, dto)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", id).Warn("update user failed")
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "user updated", nil)
}

func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var dto userapp.UpdatePasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	updated, err := h.Svc.UpdatePassword(c.Request.Context(), id, dto)
	if err != nil {
		h.Logger.WithError(err).WithField("user_id", id).Warn("update password failed")
		fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated, "password updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Svc.DeleteByID(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}

func (h *UserHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "missing query", map[string]string{"q": "is required"})
		return
	}
	size, ok := queryInt(c, "size", 20)
	if !ok {
		return
	}

	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Warn("user search failed")
		response.Error(c, http.StatusBadGateway, "search unavailable", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"query": q})
}
