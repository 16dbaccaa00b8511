package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusOnTheWay  OrderStatus = "on_the_way"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// IsValid reports whether s is one of the six known statuses.
// Transitions between valid statuses are deliberately unrestricted.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// OrderType represents how the customer receives the order
type OrderType string

const (
	OrderTypeDineIn   OrderType = "DINE_IN"
	OrderTypeTakeAway OrderType = "TAKE_AWAY"
	OrderTypeDelivery OrderType = "DELIVERY"
)

// IsValid reports whether t is a known order type
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeDineIn, OrderTypeTakeAway, OrderTypeDelivery:
		return true
	}
	return false
}

// Order represents a customer order placed at a cafe
type Order struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CustomerID      uint           `gorm:"not null;index" json:"customer_id"`
	Customer        Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CafeID          uint           `gorm:"not null;index" json:"cafe_id"`
	Cafe            Cafe           `gorm:"foreignKey:CafeID" json:"cafe,omitempty"`
	Status          OrderStatus    `gorm:"not null;default:'pending'" json:"status"`
	OrderType       OrderType      `gorm:"not null" json:"order_type"`
	Total           float64        `gorm:"not null" json:"total"` // computed at creation, immutable thereafter
	DeliveryAddress *string        `json:"delivery_address,omitempty"`
	CustomerPhone   *string        `json:"customer_phone,omitempty"`
	CustomerName    *string        `json:"customer_name,omitempty"`
	Notes           *string        `json:"notes,omitempty"`
	Items           []OrderItem    `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is an immutable snapshot of a menu item at order-creation time.
// MenuItemID is a plain reference, not a constrained foreign key: deleting the
// live MenuItem must not touch historical order lines.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"not null;index" json:"order_id"`
	MenuItemID  uint      `gorm:"not null" json:"menu_item_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null" json:"price"` // snapshot price at time of order
	Quantity    int       `gorm:"not null;check:quantity > 0" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
