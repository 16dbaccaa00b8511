package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Menu represents a named group of menu items belonging to a cafe
type Menu struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CafeID    uint           `gorm:"not null;index" json:"cafe_id"`
	Cafe      Cafe           `gorm:"foreignKey:CafeID" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Active    bool           `gorm:"not null;default:true" json:"active"`
	Items     []MenuItem     `gorm:"foreignKey:MenuID" json:"items,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Menu model
func (Menu) TableName() string {
	return "menus"
}

// CustomizationGroup is one group of selectable options on a menu item,
// e.g. {"name":"Size","options":["Small","Medium","Large"],"default":"Medium"}
type CustomizationGroup struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
	Default string   `json:"default"`
}

// Customizations is the per-item option schema, stored as a JSON column
type Customizations []CustomizationGroup

// Value implements driver.Valuer
func (c Customizations) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *Customizations) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for Customizations: %T", value)
	}
	return json.Unmarshal(data, c)
}

// MenuItem represents a purchasable item on a menu
type MenuItem struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	MenuID         uint           `gorm:"not null;index" json:"menu_id"`
	Menu           Menu           `gorm:"foreignKey:MenuID" json:"-"`
	Name           string         `gorm:"not null" json:"name"`
	Description    string         `json:"description"`
	Price          float64        `gorm:"not null;check:price >= 0" json:"price"`
	Currency       string         `gorm:"not null;default:'USD'" json:"currency"`
	Category       *string        `json:"category,omitempty"`
	ImageS3Key     *string        `json:"image_s3_key,omitempty"`       // nullable, S3 key for uploaded image
	ImageURL       *string        `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for image
	Customizations Customizations `gorm:"type:text" json:"customizations,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}
