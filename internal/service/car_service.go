package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"carrental/internal/model"
	"carrental/internal/report"
	"carrental/internal/repository"
	"carrental/internal/websocket"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCarRequest carries the multipart car form. rent_price arrives as a
// string field and available_for_sale as "1"/"0"/"true"/"false", matching
// what the dashboard posts.
type CreateCarRequest struct {
	Name             string `form:"name" binding:"required"`
	Source           string `form:"source"`
	Model            string `form:"model"`
	Colour           string `form:"colour"`
	ChasisNumber     string `form:"chasis_number" binding:"required"`
	Status           string `form:"status"`
	RentPeriod       string `form:"rent_period"`
	RentPrice        string `form:"rent_price"`
	AvailableForSale string `form:"available_for_sale"`

	Images []*multipart.FileHeader `form:"-"`
}

// UpdateCarRequest mirrors the create form; empty fields keep current values.
type UpdateCarRequest struct {
	Name             string `form:"name"`
	Source           string `form:"source"`
	Model            string `form:"model"`
	Colour           string `form:"colour"`
	ChasisNumber     string `form:"chasis_number"`
	Status           string `form:"status"`
	RentPeriod       string `form:"rent_period"`
	RentPrice        string `form:"rent_price"`
	AvailableForSale string `form:"available_for_sale"`

	Images []*multipart.FileHeader `form:"-"`
	// ReplaceImages drops the existing image set when new files arrive.
	ReplaceImages bool `form:"-"`
}

// CarImageGroup is the nested wire shape: images[0].image_urls.
type CarImageGroup struct {
	ImageURLs []string `json:"image_urls"`
}

// CarResponse is the car wire shape. Image URLs are emitted in both layouts
// consumers know how to read: flat image_urls and nested images[0].image_urls.
type CarResponse struct {
	ID               uuid.UUID       `json:"id"`
	Name             string          `json:"name"`
	Source           string          `json:"source"`
	Model            string          `json:"model"`
	Colour           string          `json:"colour"`
	ChasisNumber     string          `json:"chasis_number"`
	Status           string          `json:"status"`
	RentPeriod       string          `json:"rent_period"`
	RentPrice        decimal.Decimal `json:"rent_price"`
	AvailableForSale bool            `json:"available_for_sale"`
	ImageURLs        []string        `json:"image_urls,omitempty"`
	Images           []CarImageGroup `json:"images,omitempty"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}

// FleetStatistics feeds the dashboard.
type FleetStatistics struct {
	Total            int64            `json:"total"`
	ByStatus         map[string]int64 `json:"by_status"`
	AvailableForSale int64            `json:"available_for_sale"`
	Recent           []CarResponse    `json:"recent"`
}

// Notifier fans fleet events out to connected dashboard clients.
type Notifier interface {
	BroadcastEvent(event websocket.FleetEvent)
}

// CarService defines the interface for business logic related to Car
type CarService interface {
	CreateCar(ctx context.Context, req CreateCarRequest) (*CarResponse, error)
	GetCarByID(ctx context.Context, id string) (*CarResponse, error)
	ListCars(ctx context.Context, filter repository.CarListFilter) ([]CarResponse, int64, error)
	UpdateCar(ctx context.Context, id string, req UpdateCarRequest) (*CarResponse, error)
	DeleteCar(ctx context.Context, id string) error
	BuildCarReport(ctx context.Context, id string) (*report.Report, error)
	BuildFleetReport(ctx context.Context, filter repository.CarListFilter) (*report.Report, error)
	Statistics(ctx context.Context) (*FleetStatistics, error)
}

type carService struct {
	repo     repository.CarRepository
	images   *ImageStore
	notifier Notifier
	resolver report.ImageResolver
}

// NewCarService returns a new instance of CarService. notifier may be nil
// when no hub is running (tests).
func NewCarService(repo repository.CarRepository, images *ImageStore, notifier Notifier, apiBaseURL string) CarService {
	return &carService{
		repo:     repo,
		images:   images,
		notifier: notifier,
		resolver: report.ImageResolver{BaseURL: apiBaseURL},
	}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("invalid rent_price: " + raw)
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("rent_price must not be negative")
	}
	return price, nil
}

func parseBoolField(raw string) bool {
	return raw == "1" || raw == "true" || raw == "on"
}

// mapCarToResponse emits stored filenames as car-image paths relative to the
// API base; report generation resolves them to absolute URLs.
func mapCarToResponse(car *model.Car) *CarResponse {
	res := &CarResponse{
		ID:               car.ID,
		Name:             car.Name,
		Source:           car.Source,
		Model:            car.Model,
		Colour:           car.Colour,
		ChasisNumber:     car.ChasisNumber,
		Status:           car.Status,
		RentPeriod:       car.RentPeriod,
		RentPrice:        car.RentPrice,
		AvailableForSale: car.AvailableForSale,
		CreatedAt:        car.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        car.UpdatedAt.Format(time.RFC3339),
	}
	for _, img := range car.Images {
		res.ImageURLs = append(res.ImageURLs, "api/car-image/"+img.Filename)
	}
	if len(res.ImageURLs) > 0 {
		res.Images = []CarImageGroup{{ImageURLs: res.ImageURLs}}
	}
	return res
}

// toRecord snapshots a response into the report-facing record shape.
func (res *CarResponse) toRecord() report.CarRecord {
	rec := report.CarRecord{
		ID:               res.ID.String(),
		Name:             res.Name,
		Source:           res.Source,
		Model:            res.Model,
		Colour:           res.Colour,
		ChasisNumber:     res.ChasisNumber,
		Status:           res.Status,
		RentPeriod:       res.RentPeriod,
		RentPrice:        res.RentPrice,
		AvailableForSale: res.AvailableForSale,
	}
	for _, u := range res.ImageURLs {
		rec.ImageURLs = append(rec.ImageURLs, report.ImageRef(u))
	}
	return rec
}

func (s *carService) CreateCar(ctx context.Context, req CreateCarRequest) (*CarResponse, error) {
	if _, err := s.repo.GetByChasisNumber(ctx, req.ChasisNumber); err == nil {
		return nil, errors.New("a car with this chassis number already exists")
	}

	price, err := parsePrice(req.RentPrice)
	if err != nil {
		return nil, err
	}

	car := &model.Car{
		Name:             req.Name,
		Source:           req.Source,
		Model:            req.Model,
		Colour:           req.Colour,
		ChasisNumber:     req.ChasisNumber,
		Status:           req.Status,
		RentPeriod:       req.RentPeriod,
		RentPrice:        price,
		AvailableForSale: parseBoolField(req.AvailableForSale),
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}

	if err := s.storeImages(ctx, car, req.Images); err != nil {
		return nil, err
	}

	s.broadcast(websocket.FleetEvent{Type: "car.created", CarID: car.ID.String(), CarName: car.Name, Status: car.Status})
	return mapCarToResponse(car), nil
}

func (s *carService) GetCarByID(ctx context.Context, id string) (*CarResponse, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("car not found")
	}
	return mapCarToResponse(car), nil
}

func (s *carService) ListCars(ctx context.Context, filter repository.CarListFilter) ([]CarResponse, int64, error) {
	cars, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CarResponse, 0, len(cars))
	for i := range cars {
		responses = append(responses, *mapCarToResponse(&cars[i]))
	}
	return responses, total, nil
}

func (s *carService) UpdateCar(ctx context.Context, id string, req UpdateCarRequest) (*CarResponse, error) {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.New("car not found")
	}
	oldStatus := car.Status

	if req.ChasisNumber != "" && req.ChasisNumber != car.ChasisNumber {
		if _, err := s.repo.GetByChasisNumber(ctx, req.ChasisNumber); err == nil {
			return nil, errors.New("a car with this chassis number already exists")
		}
		car.ChasisNumber = req.ChasisNumber
	}

	if req.Name != "" {
		car.Name = req.Name
	}
	if req.Source != "" {
		car.Source = req.Source
	}
	if req.Model != "" {
		car.Model = req.Model
	}
	if req.Colour != "" {
		car.Colour = req.Colour
	}
	if req.Status != "" {
		car.Status = req.Status
	}
	if req.RentPeriod != "" {
		car.RentPeriod = req.RentPeriod
	}
	if req.RentPrice != "" {
		price, err := parsePrice(req.RentPrice)
		if err != nil {
			return nil, err
		}
		car.RentPrice = price
	}
	if req.AvailableForSale != "" {
		car.AvailableForSale = parseBoolField(req.AvailableForSale)
	}

	if err := s.repo.Update(ctx, car); err != nil {
		return nil, err
	}

	if len(req.Images) > 0 {
		if req.ReplaceImages {
			for _, img := range car.Images {
				_ = s.images.Remove(img.Filename)
			}
			if err := s.repo.DeleteImages(ctx, car.ID); err != nil {
				return nil, err
			}
			car.Images = nil
		}
		if err := s.storeImages(ctx, car, req.Images); err != nil {
			return nil, err
		}
	}

	if car.Status != oldStatus {
		s.broadcast(websocket.FleetEvent{
			Type: "car.status_changed", CarID: car.ID.String(), CarName: car.Name,
			Status: car.Status, OldStatus: oldStatus,
		})
	} else {
		s.broadcast(websocket.FleetEvent{Type: "car.updated", CarID: car.ID.String(), CarName: car.Name, Status: car.Status})
	}

	return mapCarToResponse(car), nil
}

func (s *carService) DeleteCar(ctx context.Context, id string) error {
	car, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return errors.New("car not found")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.broadcast(websocket.FleetEvent{Type: "car.deleted", CarID: car.ID.String(), CarName: car.Name})
	return nil
}

// BuildCarReport snapshots one car into a single-page detail report.
func (s *carService) BuildCarReport(ctx context.Context, id string) (*report.Report, error) {
	res, err := s.GetCarByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return report.BuildSingleCarReport(res.toRecord(), report.Options{Resolver: s.resolver}), nil
}

// BuildFleetReport snapshots the matching cars, in list order, into a
// multi-car report.
func (s *carService) BuildFleetReport(ctx context.Context, filter repository.CarListFilter) (*report.Report, error) {
	cars, err := s.repo.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	records := make([]report.CarRecord, 0, len(cars))
	for i := range cars {
		records = append(records, mapCarToResponse(&cars[i]).toRecord())
	}
	return report.BuildFleetReport(records, report.Options{Resolver: s.resolver})
}

func (s *carService) Statistics(ctx context.Context) (*FleetStatistics, error) {
	byStatus, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	forSale, err := s.repo.CountForSale(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range byStatus {
		total += n
	}

	recent, _, err := s.repo.List(ctx, repository.CarListFilter{Page: 1, PerPage: 5})
	if err != nil {
		return nil, err
	}
	recentRes := make([]CarResponse, 0, len(recent))
	for i := range recent {
		recentRes = append(recentRes, *mapCarToResponse(&recent[i]))
	}

	return &FleetStatistics{
		Total:            total,
		ByStatus:         byStatus,
		AvailableForSale: forSale,
		Recent:           recentRes,
	}, nil
}

func (s *carService) storeImages(ctx context.Context, car *model.Car, files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return nil
	}
	stored := make([]model.CarImage, 0, len(files))
	for _, fh := range files {
		filename, err := s.images.Save(fh)
		if err != nil {
			return errors.New("failed to store image: " + err.Error())
		}
		stored = append(stored, model.CarImage{Filename: filename})
	}
	if err := s.repo.AddImages(ctx, car.ID, stored); err != nil {
		return err
	}
	car.Images = append(car.Images, stored...)
	return nil
}

func (s *carService) broadcast(event websocket.FleetEvent) {
	if s.notifier != nil {
		s.notifier.BroadcastEvent(event)
	}
}
