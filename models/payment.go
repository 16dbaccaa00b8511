package models

import (
	"time"
)

// PaymentIntent is the local record of an intent created against the payment
// processor. The processor owns the authoritative state; this row lets intent
// lookups resolve the provider id without refetching on every request.
type PaymentIntent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProviderID string    `gorm:"uniqueIndex;not null" json:"provider_id"` // id assigned by the processor
	Amount     int64     `gorm:"not null" json:"amount"`                  // smallest currency unit
	Currency   string    `gorm:"not null" json:"currency"`
	Status     string    `gorm:"not null" json:"status"`
	OrderID    *uint     `gorm:"index" json:"order_id,omitempty"`
	CustomerID *uint     `gorm:"index" json:"customer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for the PaymentIntent model
func (PaymentIntent) TableName() string {
	return "payment_intents"
}
