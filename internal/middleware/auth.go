package middleware

import (
	"net/http"
	"os"
	"strings"

	"carrental/internal/navigation"
	"carrental/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by the auth middleware.
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
	CtxToken    = "token"
)

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookies sets access_token and refresh_token as HttpOnly cookies
func SetTokenCookies(c *gin.Context, accessToken, refreshToken string) {
	// Production (cross-origin): SameSiteNoneMode + Secure=true
	// Development (same-site):   SameSiteLaxMode  + Secure=false
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, path=/, domain="", secure, HttpOnly
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
	// refresh_token: 7 days, path=/, domain="", secure, HttpOnly
	c.SetCookie("refresh_token", refreshToken, 3600*24*7, "/", "", secure, true)
}

// ClearTokenCookies removes access_token and refresh_token cookies
func ClearTokenCookies(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" || os.Getenv("RENDER") != "" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
	c.SetCookie("refresh_token", "", -1, "/", "", secure, true)
}

// extractToken reads the bearer token from the Authorization header first,
// then falls back to the access_token cookie. Returns "" when absent.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	tokenString, err := c.Cookie("access_token")
	if err != nil {
		return ""
	}
	return tokenString
}

// authenticate validates the request token and stores the claims in the
// context. A 401 here carries the login redirect so clients can clear their
// session and navigate; this is the one fatal, non-retried failure class.
func authenticate(c *gin.Context) bool {
	tokenString := extractToken(c)
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			response.ErrorRedirect(http.StatusUnauthorized, "Authorization is missing", navigation.LoginPath))
		return false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			response.ErrorRedirect(http.StatusUnauthorized, "Invalid token", navigation.LoginPath))
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			response.ErrorRedirect(http.StatusUnauthorized, "Invalid token claims", navigation.LoginPath))
		return false
	}

	role, _ := claims["role"].(string)
	c.Set(CtxUserID, claims["sub"])
	c.Set(CtxUserRole, role)
	c.Set(CtxToken, tokenString)
	return true
}

// RequireAuth admits any request carrying a valid token.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		c.Next()
	}
}

// OptionalAuth populates the context from a valid token when one is present
// but never rejects the request. Used by endpoints that serve both guests and
// authenticated clients, like the menu.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return GetJWTSecret(), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				role, _ := claims["role"].(string)
				c.Set(CtxUserID, claims["sub"])
				c.Set(CtxUserRole, role)
				c.Set(CtxToken, tokenString)
			}
		}
		c.Next()
	}
}

// RequireRole validates the token and checks the role claim against the
// allowed list. Menu hiding is not enforcement; this is.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}

		userRole := c.GetString(CtxUserRole)
		if userRole == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Role not found in token"))
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
	}
}
