package handler

import (
	"net/http"
	"strconv"

	"carrental/internal/middleware"
	"carrental/internal/model"
	"carrental/internal/navigation"
	"carrental/internal/service"
	"carrental/pkg/response"

	"github.com/gin-gonic/gin"
)

// MenuHandler exposes the navigation core over HTTP: the role-derived menu
// tree and the route authorization decision the dashboard's guards consult.
type MenuHandler struct {
	userService service.UserService
	guestMode   navigation.GuestMenuMode
}

// NewMenuHandler sets up the routing dependencies for navigation endpoints
func NewMenuHandler(userService service.UserService, guestMode navigation.GuestMenuMode) *MenuHandler {
	return &MenuHandler{userService: userService, guestMode: guestMode}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *MenuHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/menu", middleware.OptionalAuth(), h.GetMenu)
	router.GET("/authorize", middleware.OptionalAuth(), h.Authorize)
}

// currentUser loads the user for an optionally authenticated request.
// Returns nil for guests and for tokens pointing at deleted users.
func (h *MenuHandler) currentUser(c *gin.Context) *model.User {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		return nil
	}
	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

// GetMenu handles GET /menu, returning the navigation tree for the caller's
// effective role. Guests get the configured guest menu; no car/user
// management entries ever appear for them.
// @Summary      Get navigation menu
// @Description  Returns the role-derived navigation tree for the current session
// @Tags         navigation
// @Produce      json
// @Success      200  {object}  response.Response{data=[]navigation.MenuNode}
// @Router       /api/menu [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	user := h.currentUser(c)
	items := navigation.Menu(user, h.guestMode)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, items))
}

// Authorize handles GET /authorize?path=&public=, re-evaluating the route
// decision on every call. Session state can change between navigations, so
// nothing is cached here.
// @Summary      Authorize a route
// @Description  Decides whether the current session may visit a path, and where to redirect otherwise
// @Tags         navigation
// @Produce      json
// @Param        path    query  string  false  "Route path"
// @Param        public  query  bool    false  "Whether the route is public (login/register)"
// @Success      200  {object}  response.Response{data=navigation.Decision}
// @Router       /api/authorize [get]
func (h *MenuHandler) Authorize(c *gin.Context) {
	public, _ := strconv.ParseBool(c.DefaultQuery("public", "false"))
	route := navigation.Route{Path: c.Query("path"), Public: public}

	session := navigation.Session{Token: c.GetString(middleware.CtxToken)}
	if session.Token != "" {
		session.User = h.currentUser(c)
	}

	decision := navigation.Authorize(route, session)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, decision))
}
