package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"carrental/internal/middleware"
	"carrental/internal/model"
	"carrental/internal/report"
	"carrental/internal/repository"
	"carrental/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCarService records update calls; everything else returns empty results.
type fakeCarService struct {
	updates int
}

func (f *fakeCarService) CreateCar(_ context.Context, req service.CreateCarRequest) (*service.CarResponse, error) {
	return &service.CarResponse{Name: req.Name}, nil
}

func (f *fakeCarService) GetCarByID(_ context.Context, _ string) (*service.CarResponse, error) {
	return &service.CarResponse{}, nil
}

func (f *fakeCarService) ListCars(_ context.Context, _ repository.CarListFilter) ([]service.CarResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakeCarService) UpdateCar(_ context.Context, _ string, req service.UpdateCarRequest) (*service.CarResponse, error) {
	f.updates++
	return &service.CarResponse{Name: req.Name}, nil
}

func (f *fakeCarService) DeleteCar(_ context.Context, _ string) error { return nil }

func (f *fakeCarService) BuildCarReport(_ context.Context, _ string) (*report.Report, error) {
	return report.BuildSingleCarReport(report.CarRecord{}, report.Options{}), nil
}

func (f *fakeCarService) BuildFleetReport(_ context.Context, _ repository.CarListFilter) (*report.Report, error) {
	return report.BuildFleetReport([]report.CarRecord{}, report.Options{})
}

func (f *fakeCarService) Statistics(_ context.Context) (*service.FleetStatistics, error) {
	return &service.FleetStatistics{}, nil
}

func superAdminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "11111111-1111-1111-1111-111111111111",
		"role": model.RoleSuperAdmin,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(middleware.GetJWTSecret())
	require.NoError(t, err)
	return signed
}

func multipartForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, value := range fields {
		require.NoError(t, w.WriteField(field, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func newCarTestRouter(t *testing.T) (*gin.Engine, *fakeCarService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &fakeCarService{}
	store, err := service.NewImageStore(t.TempDir())
	require.NoError(t, err)

	router := gin.New()
	api := router.Group("/api")
	NewCarHandler(svc, store).RegisterRoutes(api)
	return router, svc
}

func postMultipart(t *testing.T, router *gin.Engine, target string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartForm(t, fields)
	req := httptest.NewRequest("POST", target, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+superAdminToken(t))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUpdateCarViaPostMethodOverride(t *testing.T) {
	router, svc := newCarTestRouter(t)

	w := postMultipart(t, router, "/api/cars/abc?_method=PUT", map[string]string{"name": "Updated"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, svc.updates)

	// The override is case-insensitive.
	w = postMultipart(t, router, "/api/cars/abc?_method=put", map[string]string{"name": "Updated"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, svc.updates)
}

func TestUpdateCarViaPostRequiresMethodOverride(t *testing.T) {
	router, svc := newCarTestRouter(t)

	// Missing _method is not an update.
	w := postMultipart(t, router, "/api/cars/abc", map[string]string{"name": "Updated"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	// Wrong override value is rejected too.
	w = postMultipart(t, router, "/api/cars/abc?_method=PATCH", map[string]string{"name": "Updated"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	assert.Equal(t, 0, svc.updates)
}
