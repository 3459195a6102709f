package repository

import (
	"context"

	"carrental/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CarListFilter narrows and orders car list queries.
type CarListFilter struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
}

// carSortColumns whitelists caller-supplied sort keys.
var carSortColumns = map[string]string{
	"name":          "name",
	"model":         "model",
	"status":        "status",
	"rent_price":    "rent_price",
	"chasis_number": "chasis_number",
	"created_at":    "created_at",
}

// CarRepository defines the interface for data access of Car entities
type CarRepository interface {
	Create(ctx context.Context, car *model.Car) error
	GetByID(ctx context.Context, id string) (*model.Car, error)
	GetByChasisNumber(ctx context.Context, chasis string) (*model.Car, error)
	List(ctx context.Context, filter CarListFilter) ([]model.Car, int64, error)
	ListAll(ctx context.Context, filter CarListFilter) ([]model.Car, error)
	Update(ctx context.Context, car *model.Car) error
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, carID uuid.UUID, images []model.CarImage) error
	DeleteImages(ctx context.Context, carID uuid.UUID) error
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountForSale(ctx context.Context) (int64, error)
}

type carRepository struct {
	db *gorm.DB
}

// NewCarRepository returns a new instance of CarRepository
func NewCarRepository(db *gorm.DB) CarRepository {
	return &carRepository{db: db}
}

func (r *carRepository) Create(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *carRepository) GetByID(ctx context.Context, id string) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Preload("Images").First(&car, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) GetByChasisNumber(ctx context.Context, chasis string) (*model.Car, error) {
	var car model.Car
	if err := r.db.WithContext(ctx).Where("chasis_number = ?", chasis).First(&car).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *carRepository) filtered(ctx context.Context, filter CarListFilter) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Car{})
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("name ILIKE ? OR model ILIKE ? OR chasis_number ILIKE ?", like, like, like)
	}
	return db
}

func (r *carRepository) ordered(db *gorm.DB, filter CarListFilter) *gorm.DB {
	column, ok := carSortColumns[filter.SortBy]
	if !ok {
		column = "created_at"
	}
	order := "asc"
	if filter.SortOrder == "desc" || (filter.SortBy == "" && column == "created_at") {
		order = "desc"
	}
	return db.Order(column + " " + order)
}

func (r *carRepository) List(ctx context.Context, filter CarListFilter) ([]model.Car, int64, error) {
	var cars []model.Car
	var total int64

	db := r.filtered(ctx, filter)
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	db = r.ordered(db, filter).Preload("Images").Offset(offset).Limit(filter.PerPage)
	if err := db.Find(&cars).Error; err != nil {
		return nil, 0, err
	}

	return cars, total, nil
}

// ListAll fetches every matching car without pagination, for fleet reports.
func (r *carRepository) ListAll(ctx context.Context, filter CarListFilter) ([]model.Car, error) {
	var cars []model.Car
	db := r.ordered(r.filtered(ctx, filter), filter).Preload("Images")
	if err := db.Find(&cars).Error; err != nil {
		return nil, err
	}
	return cars, nil
}

func (r *carRepository) Update(ctx context.Context, car *model.Car) error {
	return r.db.WithContext(ctx).Save(car).Error
}

func (r *carRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Car{}).Error
}

func (r *carRepository) AddImages(ctx context.Context, carID uuid.UUID, images []model.CarImage) error {
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].CarID = carID
	}
	return r.db.WithContext(ctx).Create(&images).Error
}

func (r *carRepository) DeleteImages(ctx context.Context, carID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("car_id = ?", carID).Delete(&model.CarImage{}).Error
}

// CountByStatus aggregates fleet size per status for the dashboard.
func (r *carRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type bucket struct {
		Status string
		Count  int64
	}
	var rows []bucket
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Select("status, count(*) as count").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *carRepository) CountForSale(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Car{}).
		Where("available_for_sale = ?", true).Count(&total).Error
	return total, err
}
