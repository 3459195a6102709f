package handler

import (
	"net/http"

	"carrental/internal/middleware"
	"carrental/internal/navigation"
	"carrental/internal/service"
	"carrental/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler sets up the routing dependencies for auth endpoints
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", h.Logout)
	}

	// Me route (authenticated — any valid token)
	router.GET("/me", middleware.RequireAuth(), h.GetMe)
}

// Login handles POST /auth/login to authenticate and return a JWT token
// @Summary      Login user
// @Description  Authenticates a user by email and password, returning an access token and the user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.LoginRequest   true  "Login Credentials"
// @Success      200      {object}  response.Response{data=service.TokenPair}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload"))
		return
	}

	pair, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, err.Error()))
		return
	}

	// Set tokens as HttpOnly cookies
	middleware.SetTokenCookies(c, pair.AccessToken, pair.RefreshToken)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pair))
}

// RefreshToken handles POST /auth/refresh to issue new access and refresh tokens
// @Summary      Refresh token
// @Description  Issues a new access token and refresh token using a valid refresh token
// @Tags         auth
// @Produce      json
// @Success      200      {object}  response.Response{data=service.TokenPair}
// @Failure      401      {object}  response.Response
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusUnauthorized,
			response.ErrorRedirect(http.StatusUnauthorized, "Missing refresh token", navigation.LoginPath))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized,
			response.ErrorRedirect(http.StatusUnauthorized, err.Error(), navigation.LoginPath))
		return
	}

	middleware.SetTokenCookies(c, pair.AccessToken, pair.RefreshToken)

	c.JSON(http.StatusOK, response.Success(http.StatusOK, pair))
}

// Logout handles POST /auth/logout. The session is revoked server-side before
// cookies are cleared, so the clear happens even if the client never
// completes its redirect.
// @Summary      Logout
// @Description  Revokes the refresh token and clears auth cookies
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, _ := c.Cookie("refresh_token")
	if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to revoke session"))
		return
	}

	middleware.ClearTokenCookies(c)
	c.JSON(http.StatusOK, response.Response{
		Status:     "success",
		StatusCode: http.StatusOK,
		Data:       "Logged out",
		RedirectTo: navigation.LoginPath,
	})
}

// GetMe handles GET /me to return current authenticated user based on JWT
// @Summary      Get current user
// @Description  Get the currently authenticated user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200      {object}  response.Response{data=service.UserResponse}
// @Failure      401      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized,
			response.ErrorRedirect(http.StatusUnauthorized, "User ID not found in context", navigation.LoginPath))
		return
	}

	user, err := h.authService.GetMe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "User not found"))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, user))
}
