package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer represents a mobile-app customer account
type Customer struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"not null" json:"name"`
	Email             string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"not null" json:"-"` // never serialized
	FavoriteCafes     []Cafe         `gorm:"many2many:customer_favorite_cafes" json:"favorite_cafes,omitempty"`
	FavoriteMenuItems []MenuItem     `gorm:"many2many:customer_favorite_menu_items" json:"favorite_menu_items,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
