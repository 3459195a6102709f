package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrental/internal/model"
	"carrental/internal/navigation"
	"carrental/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "11111111-1111-1111-1111-111111111111",
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString(GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func protectedRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"role": c.GetString(CtxUserRole),
		})
	})
	return r
}

func doRequest(r *gin.Engine, configure func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if configure != nil {
		configure(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestRequireAuthMissingToken(t *testing.T) {
	w := doRequest(protectedRouter(RequireAuth()), nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, navigation.LoginPath, resp.RedirectTo)
}

func TestRequireAuthBearerToken(t *testing.T) {
	token := signToken(t, "staff", time.Hour)
	w := doRequest(protectedRouter(RequireAuth()), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)
}

func TestRequireAuthCookieFallback(t *testing.T) {
	token := signToken(t, "staff", time.Hour)
	w := doRequest(protectedRouter(RequireAuth()), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuthRejectsExpiredAndMalformedTokens(t *testing.T) {
	for name, token := range map[string]string{
		"expired":   signToken(t, "staff", -time.Hour),
		"malformed": "not.a.jwt",
	} {
		t.Run(name, func(t *testing.T) {
			w := doRequest(protectedRouter(RequireAuth()), func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer "+token)
			})

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, navigation.LoginPath, decodeResponse(t, w).RedirectTo)
		})
	}
}

func TestRequireAuthRejectsWrongSigningMethod(t *testing.T) {
	// alg=none tokens must never pass.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "x", "role": model.RoleSuperAdmin, "exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := doRequest(protectedRouter(RequireAuth()), func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+signed)
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	router := protectedRouter(RequireRole(model.RoleSuperAdmin))

	admin := signToken(t, model.RoleSuperAdmin, time.Hour)
	w := doRequest(router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+admin)
	})
	assert.Equal(t, http.StatusOK, w.Code)

	clerk := signToken(t, "staff", time.Hour)
	w = doRequest(router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+clerk)
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	// 403 is terminal, not a session failure: no redirect.
	assert.Empty(t, decodeResponse(t, w).RedirectTo)
}

func TestRequireRoleUnauthenticatedGets401Not403(t *testing.T) {
	w := doRequest(protectedRouter(RequireRole(model.RoleSuperAdmin)), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth(t *testing.T) {
	router := protectedRouter(OptionalAuth())

	// Guests pass through with no role in context.
	w := doRequest(router, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":""`)

	// A valid token populates the context.
	token := signToken(t, "staff", time.Hour)
	w = doRequest(router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"staff"`)

	// A garbage token degrades to guest instead of failing.
	w = doRequest(router, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":""`)
}
