package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Car statuses with distinguished report/badge behavior. Status is stored as
// free-form text; anything outside these values renders with the default badge.
const (
	CarStatusAvailable   = "available"
	CarStatusRented      = "rented"
	CarStatusMaintenance = "maintenance"
)

// Car represents a rentable/sellable vehicle.
type Car struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name             string          `gorm:"type:varchar(255);not null" json:"name"`
	Source           string          `gorm:"type:varchar(255)" json:"source"`
	Model            string          `gorm:"type:varchar(255)" json:"model"`
	Colour           string          `gorm:"type:varchar(64)" json:"colour"` // hex, rgb()/rgba(), or empty
	ChasisNumber     string          `gorm:"type:varchar(100);uniqueIndex;not null" json:"chasis_number"`
	Status           string          `gorm:"type:varchar(50)" json:"status"`
	RentPeriod       string          `gorm:"type:varchar(50)" json:"rent_period"` // underscore-separated token, e.g. "15_days"
	RentPrice        decimal.Decimal `gorm:"type:numeric(12,2)" json:"rent_price"`
	AvailableForSale bool            `gorm:"default:false" json:"available_for_sale"`
	Images           []CarImage      `gorm:"foreignKey:CarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"` // GORM soft delete
}

// CarImage is one stored image file belonging to a car.
type CarImage struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CarID     uuid.UUID `gorm:"type:uuid;not null;index" json:"car_id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"` // stored name under the upload dir
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
