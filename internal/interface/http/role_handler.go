package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userapp "github.com/jabaapp/user-service/internal/application"
	"github.com/jabaapp/user-service/pkg/response"
)

// RoleHandler serves the role catalog.
type RoleHandler struct {
	Svc *userapp.RoleService
}

func NewRoleHandler(svc *userapp.RoleService) *RoleHandler {
	return &RoleHandler{Svc: svc}
}

type roleResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.Svc.FindAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list roles", nil)
		return
	}
	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, roleResponse{ID: r.ID.String(), Name: r.Name})
	}
	response.Success(c, http.StatusOK, out, "roles", nil)
}
