package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/models"
)

// OrderLine is one requested line in an order-create call
type OrderLine struct {
	MenuItemID uint
	Quantity   int
}

// CreateOrderInput carries everything needed to place an order
type CreateOrderInput struct {
	CustomerID      uint
	CafeID          uint
	Items           []OrderLine
	OrderType       models.OrderType
	DeliveryAddress *string
	CustomerPhone   *string
	CustomerName    *string
	Notes           *string
}

// OrderService implements the order lifecycle: creation with line-item
// snapshots, unguarded status transitions, and the list/detail queries.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// Create validates every referenced menu item, computes the total from current
// prices, and persists the order together with its line-item snapshots in a
// single transaction. A single unresolvable menu item aborts the whole create.
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrInvalidArgument)
	}
	if !input.OrderType.IsValid() {
		return nil, fmt.Errorf("%w: unknown order type %q", ErrInvalidArgument, input.OrderType)
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidArgument)
		}
	}

	var customer models.Customer
	if err := s.db.First(&customer, input.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, input.CustomerID)
		}
		return nil, err
	}

	var cafe models.Cafe
	if err := s.db.First(&cafe, input.CafeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cafe %d", ErrNotFound, input.CafeID)
		}
		return nil, err
	}

	// Resolve all referenced menu items before touching the orders table so a
	// missing reference rejects the request with nothing persisted.
	items := make(map[uint]models.MenuItem, len(input.Items))
	for _, line := range input.Items {
		if _, seen := items[line.MenuItemID]; seen {
			continue
		}
		var item models.MenuItem
		if err := s.db.First(&item, line.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, line.MenuItemID)
			}
			return nil, err
		}
		items[line.MenuItemID] = item
	}

	order := models.Order{
		CustomerID:      input.CustomerID,
		CafeID:          input.CafeID,
		Status:          models.StatusPending,
		OrderType:       input.OrderType,
		DeliveryAddress: input.DeliveryAddress,
		CustomerPhone:   input.CustomerPhone,
		CustomerName:    input.CustomerName,
		Notes:           input.Notes,
	}

	for _, line := range input.Items {
		item := items[line.MenuItemID]
		order.Total += item.Price * float64(line.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:  item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Quantity:    line.Quantity,
		})
	}

	// Order and order_items commit together or not at all
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return nil, err
	}

	return s.FindByID(order.ID)
}

// UpdateStatus validates the new status against the enum and persists it.
// Transition legality is intentionally not checked: any valid status can move
// to any other valid status, matching the platform's observed behavior.
func (s *OrderService) UpdateStatus(orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidArgument, newStatus)
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	if err := s.db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}

	return s.FindByID(orderID)
}

// FindByID returns a single order with items, customer and cafe attached
func (s *OrderService) FindByID(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items").Preload("Customer").Preload("Cafe").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

// FindByCafe returns a cafe's orders, newest first
func (s *OrderService) FindByCafe(cafeID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Customer").
		Where("cafe_id = ?", cafeID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindByCustomer returns a customer's orders, newest first
func (s *OrderService) FindByCustomer(customerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items").Preload("Cafe").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}
