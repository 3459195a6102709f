package handler

import (
	"context"
	"net/http"
	"testing"

	"carrental/internal/model"
	"carrental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	updates int
}

func (f *fakeUserService) CreateUser(_ context.Context, req service.CreateUserRequest) (*service.UserResponse, error) {
	return &service.UserResponse{Name: req.Name}, nil
}

func (f *fakeUserService) GetUserByID(_ context.Context, _ string) (*service.UserResponse, error) {
	return &service.UserResponse{}, nil
}

func (f *fakeUserService) GetUser(_ context.Context, _ string) (*model.User, error) {
	return &model.User{}, nil
}

func (f *fakeUserService) ListUsers(_ context.Context, _, _ int, _ string) ([]service.UserResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserService) UpdateUser(_ context.Context, _ string, req service.UpdateUserRequest) (*service.UserResponse, error) {
	f.updates++
	return &service.UserResponse{Name: req.Name}, nil
}

func (f *fakeUserService) DeleteUser(_ context.Context, _ string) error { return nil }

func newUserTestRouter(t *testing.T) (*gin.Engine, *fakeUserService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &fakeUserService{}
	router := gin.New()
	api := router.Group("/api")
	NewUserHandler(svc).RegisterRoutes(api)
	return router, svc
}

func TestUpdateUserViaPostMethodOverride(t *testing.T) {
	router, svc := newUserTestRouter(t)

	w := postMultipart(t, router, "/api/users/abc?_method=PUT", map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.updates)
}

func TestUpdateUserViaPostRequiresMethodOverride(t *testing.T) {
	router, svc := newUserTestRouter(t)

	w := postMultipart(t, router, "/api/users/abc", map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	w = postMultipart(t, router, "/api/users/abc?_method=DELETE", map[string]string{"name": "Renamed"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	assert.Equal(t, 0, svc.updates)
}
