package database

import (
	"errors"
	"log"

	"carrental/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.RefreshToken{},
		&model.Car{},
		&model.CarImage{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	seedRoles(db)

	return db, nil
}

// seedRoles ensures the built-in roles exist. Idempotent.
func seedRoles(db *gorm.DB) {
	builtin := []model.Role{
		{Name: model.RoleSuperAdmin, Description: "Full access to cars, users and dashboard", IsSystem: true},
		{Name: "staff", Description: "Read access to the car list", IsSystem: true},
	}
	for _, r := range builtin {
		var existing model.Role
		if err := db.Where("name = ?", r.Name).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&r).Error; err != nil {
				log.Println("WARNING: Failed to seed role", r.Name, ":", err)
			}
		}
	}
}
