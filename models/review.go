package models

import (
	"time"

	"gorm.io/gorm"
)

// Review represents a customer review of a cafe. Reviews are created once and
// never edited; each insert triggers a recompute of the cafe's rating aggregate.
type Review struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	CafeID       uint           `gorm:"not null;index" json:"cafe_id"`
	Cafe         Cafe           `gorm:"foreignKey:CafeID" json:"-"`
	CustomerID   *uint          `gorm:"index" json:"customer_id,omitempty"` // nullable, anonymous reviews allowed
	Customer     *Customer      `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CustomerName *string        `json:"customer_name,omitempty"`
	Rating       int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Text         *string        `json:"text,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Review model
func (Review) TableName() string {
	return "reviews"
}
