package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a cafe owner account for the admin dashboard
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"` // never serialized
	CafeID       *uint          `gorm:"index" json:"cafe_id,omitempty"`
	Cafe         *Cafe          `gorm:"foreignKey:CafeID" json:"cafe,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
