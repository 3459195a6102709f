package handler

import (
	"net/http"

	"carrental/internal/middleware"
	"carrental/internal/service"
	"carrental/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
}

// NewRoleHandler sets up the routing dependencies for Role endpoints
func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/roles", middleware.RequireAuth(), h.ListRoles)
}

// ListRoles handles GET /roles
// @Summary      List roles
// @Description  Returns the assignable roles for the user form's picker
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.RolesResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch roles"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}
