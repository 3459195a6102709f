package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"

	"carrental/internal/middleware"
	"carrental/internal/model"
	"carrental/internal/report"
	"carrental/internal/repository"
	"carrental/internal/service"
	"carrental/pkg/pagination"
	"carrental/pkg/response"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService service.CarService
	images     *service.ImageStore
	pdf        *report.PDFRenderer
}

// NewCarHandler sets up the routing dependencies for Car endpoints
func NewCarHandler(carService service.CarService, images *service.ImageStore) *CarHandler {
	return &CarHandler{carService: carService, images: images, pdf: report.NewPDFRenderer()}
}

// RegisterRoutes binds the endpoints to the gin Engine or RouterGroup.
// Reads need any valid session; writes are super-admin only. Hiding menu
// entries is not enforcement, this is.
func (h *CarHandler) RegisterRoutes(router *gin.RouterGroup) {
	cars := router.Group("/cars")
	{
		cars.GET("", middleware.RequireAuth(), h.ListCars)
		cars.GET("/:id", middleware.RequireAuth(), h.GetCarByID)
		cars.POST("", middleware.RequireRole(model.RoleSuperAdmin), h.CreateCar)
		cars.POST("/:id", middleware.RequireRole(model.RoleSuperAdmin), h.UpdateCarViaPost)
		cars.PUT("/:id", middleware.RequireRole(model.RoleSuperAdmin), h.UpdateCar)
		cars.DELETE("/:id", middleware.RequireRole(model.RoleSuperAdmin), h.DeleteCar)
	}

	reports := router.Group("/reports")
	{
		reports.GET("/cars", middleware.RequireAuth(), h.FleetReport)
		reports.GET("/cars/:id", middleware.RequireAuth(), h.CarReport)
	}

	router.GET("/statistics/fleet", middleware.RequireAuth(), h.FleetStatistics)

	// Stored images are fetched by report renderers and <img> tags without
	// auth headers, so this stays public.
	router.GET("/car-image/:filename", h.ServeCarImage)
}

func carListFilter(c *gin.Context) repository.CarListFilter {
	params := pagination.Parse(c)
	return repository.CarListFilter{
		Page:      params.Page,
		PerPage:   params.PerPage,
		Search:    params.Search,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
	}
}

// imageFiles gathers uploaded files across the field spellings the dashboard
// has used: image, images, images[], images[0], images[1]...
func imageFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	var fields []string
	for field := range form.File {
		if field == "image" || field == "images" || strings.HasPrefix(field, "images[") {
			fields = append(fields, field)
		}
	}
	// Shorter names first so images[2] precedes images[10].
	sort.Slice(fields, func(i, j int) bool {
		if len(fields[i]) != len(fields[j]) {
			return len(fields[i]) < len(fields[j])
		}
		return fields[i] < fields[j]
	})

	var files []*multipart.FileHeader
	for _, field := range fields {
		files = append(files, form.File[field]...)
	}
	return files
}

// ListCars handles GET /cars with pagination, search, and sorting
// @Summary      List cars
// @Description  Retrieves a paginated car list: page, per_page, search, sort_by, sort_order
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        page        query  int     false  "Page number (default 1)"
// @Param        per_page    query  int     false  "Items per page (default 10)"
// @Param        search      query  string  false  "Search in name/model/chassis"
// @Param        sort_by     query  string  false  "Sort column"
// @Param        sort_order  query  string  false  "asc or desc"
// @Success      200  {object}  response.Paginated
// @Failure      500  {object}  response.Response
// @Router       /api/cars [get]
func (h *CarHandler) ListCars(c *gin.Context) {
	filter := carListFilter(c)
	cars, total, err := h.carService.ListCars(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch cars"))
		return
	}

	params := pagination.Params{Page: filter.Page, PerPage: filter.PerPage}
	c.JSON(http.StatusOK, response.Paginated{
		Data:        cars,
		CurrentPage: filter.Page,
		PerPage:     filter.PerPage,
		Total:       total,
		LastPage:    params.LastPage(total),
	})
}

// GetCarByID handles GET /cars/:id
// @Summary      Get car by ID
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Car ID"
// @Success      200  {object}  response.Response{data=service.CarResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/cars/{id} [get]
func (h *CarHandler) GetCarByID(c *gin.Context) {
	car, err := h.carService.GetCarByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, car))
}

// CreateCar handles POST /cars (multipart with image files)
// @Summary      Create a new car
// @Tags         cars
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=service.CarResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/cars [post]
func (h *CarHandler) CreateCar(c *gin.Context) {
	var req service.CreateCarRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.Images = imageFiles(c)

	car, err := h.carService.CreateCar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, car))
}

// UpdateCarViaPost handles POST /cars/:id?_method=PUT, the multipart method
// override the dashboard sends for updates.
func (h *CarHandler) UpdateCarViaPost(c *gin.Context) {
	if !strings.EqualFold(c.Query("_method"), "PUT") {
		c.JSON(http.StatusMethodNotAllowed, response.Error(http.StatusMethodNotAllowed, "Use _method=PUT for updates"))
		return
	}
	h.UpdateCar(c)
}

// UpdateCar handles PUT /cars/:id
// @Summary      Update car
// @Tags         cars
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Car ID"
// @Success      200  {object}  response.Response{data=service.CarResponse}
// @Failure      400  {object}  response.Response
// @Router       /api/cars/{id} [put]
func (h *CarHandler) UpdateCar(c *gin.Context) {
	var req service.UpdateCarRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}
	req.Images = imageFiles(c)
	req.ReplaceImages = len(req.Images) > 0

	car, err := h.carService.UpdateCar(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, car))
}

// DeleteCar handles DELETE /cars/:id
// @Summary      Delete car
// @Tags         cars
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Car ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /api/cars/{id} [delete]
func (h *CarHandler) DeleteCar(c *gin.Context) {
	if err := h.carService.DeleteCar(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, "Car deleted successfully"))
}

// CarReport handles GET /reports/cars/:id?format=pdf|html
// @Summary      Single car report
// @Description  Generates the car detail report as PDF (default) or printable HTML
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id      path   string  true   "Car ID"
// @Param        format  query  string  false  "pdf or html"
// @Failure      404  {object}  response.Response
// @Router       /api/reports/cars/{id} [get]
func (h *CarHandler) CarReport(c *gin.Context) {
	r, err := h.carService.BuildCarReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
		return
	}
	h.writeReport(c, r, "car-report")
}

// FleetReport handles GET /reports/cars?format=pdf|html, honoring the list
// filters (search, sort) so the export matches what the list shows.
// @Summary      Fleet report
// @Tags         reports
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        format  query  string  false  "pdf or html"
// @Failure      500  {object}  response.Response
// @Router       /api/reports/cars [get]
func (h *CarHandler) FleetReport(c *gin.Context) {
	r, err := h.carService.BuildFleetReport(c.Request.Context(), carListFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to build report"))
		return
	}
	h.writeReport(c, r, "cars-report")
}

func (h *CarHandler) writeReport(c *gin.Context, r *report.Report, basename string) {
	if strings.EqualFold(c.DefaultQuery("format", "pdf"), "html") {
		html, err := report.RenderHTML(r)
		if err != nil {
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to render report"))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", basename+".pdf"))
	c.Status(http.StatusOK)
	if err := h.pdf.Render(r, c.Writer); err != nil {
		// Headers are already out; log-and-truncate is all that's left.
		_ = c.Error(err)
	}
}

// FleetStatistics handles GET /statistics/fleet for the dashboard
// @Summary      Fleet statistics
// @Tags         statistics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=service.FleetStatistics}
// @Failure      500  {object}  response.Response
// @Router       /api/statistics/fleet [get]
func (h *CarHandler) FleetStatistics(c *gin.Context) {
	stats, err := h.carService.Statistics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Failed to fetch statistics"))
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}

// ServeCarImage handles GET /car-image/:filename
// @Summary      Serve a stored car image
// @Tags         cars
// @Produce      image/jpeg
// @Param        filename  path  string  true  "Stored filename"
// @Failure      404  {object}  response.Response
// @Router       /api/car-image/{filename} [get]
func (h *CarHandler) ServeCarImage(c *gin.Context) {
	path, err := h.images.Path(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, "Image not found"))
		return
	}
	c.File(path)
}
