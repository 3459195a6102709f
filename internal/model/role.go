package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named tag assignable to users. "super-admin" is the only role
// with distinguished navigation/authorization behavior.
type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	IsSystem    bool      `gorm:"default:false" json:"is_system"` // Prevent deletion of built-in roles
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoleSuperAdmin is the distinguished role name.
const RoleSuperAdmin = "super-admin"
