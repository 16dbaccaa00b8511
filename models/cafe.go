package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// DayHours is a single weekday's opening window
type DayHours struct {
	Open    string `json:"open"`  // "HH:MM"
	Close   string `json:"close"` // "HH:MM"
	Enabled bool   `json:"enabled"`
}

// BusinessHours maps lowercase weekday names ("monday".."sunday") to opening
// windows. Stored as a JSON column so the schedule travels with the cafe row.
type BusinessHours map[string]DayHours

// Value implements driver.Valuer so GORM can persist the map as JSON
func (bh BusinessHours) Value() (driver.Value, error) {
	if bh == nil {
		return nil, nil
	}
	return json.Marshal(bh)
}

// Scan implements sql.Scanner to read the JSON column back into the map
func (bh *BusinessHours) Scan(value interface{}) error {
	if value == nil {
		*bh = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type for BusinessHours: %T", value)
	}
	return json.Unmarshal(data, bh)
}

// DefaultBusinessHours returns the schedule seeded at cafe signup:
// 08:00-20:00, all seven days enabled.
func DefaultBusinessHours() BusinessHours {
	hours := make(BusinessHours, 7)
	for _, day := range []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"} {
		hours[day] = DayHours{Open: "08:00", Close: "20:00", Enabled: true}
	}
	return hours
}

// Cafe represents a tenant cafe in the platform
type Cafe struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"not null" json:"name"`
	Address        string         `json:"address"`
	Latitude       *float64       `json:"latitude"`
	Longitude      *float64       `json:"longitude"`
	RatingAvg      float64        `gorm:"not null;default:0" json:"rating_avg"`   // derived, written by the rating aggregator only
	RatingCount    int            `gorm:"not null;default:0" json:"rating_count"` // derived, written by the rating aggregator only
	ThemePrimary   string         `json:"theme_primary"`
	ThemeSecondary string         `json:"theme_secondary"`
	BusinessHours  BusinessHours  `gorm:"type:text" json:"business_hours"`
	OwnerID        *uint          `gorm:"index" json:"owner_id,omitempty"` // foreign key to users table
	IsOpen         bool           `gorm:"-" json:"is_open"`                // computed field, derived from BusinessHours at read time
	Menus          []Menu         `gorm:"foreignKey:CafeID" json:"menus,omitempty"`
	Reviews        []Review       `gorm:"foreignKey:CafeID" json:"reviews,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Cafe model
func (Cafe) TableName() string {
	return "cafes"
}
