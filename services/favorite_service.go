package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/models"
)

// FavoriteService manages a customer's favorite cafes and menu items.
// All mutations are idempotent: favoriting twice is a no-op, and removing
// something never favorited succeeds without error.
type FavoriteService struct {
	db *gorm.DB
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

// Profile returns the customer with both favorite sets resolved.
// The password hash never leaves the model's json:"-" tag.
func (s *FavoriteService) Profile(customerID uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Preload("FavoriteCafes").Preload("FavoriteMenuItems").
		First(&customer, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: customer %d", ErrNotFound, customerID)
		}
		return nil, err
	}
	return &customer, nil
}

// AddFavoriteCafe upserts (customer, cafe) into the favorites join table
func (s *FavoriteService) AddFavoriteCafe(customerID, cafeID uint) (*models.Customer, error) {
	customer, err := s.Profile(customerID)
	if err != nil {
		return nil, err
	}

	var cafe models.Cafe
	if err := s.db.First(&cafe, cafeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cafe %d", ErrNotFound, cafeID)
		}
		return nil, err
	}

	for _, fav := range customer.FavoriteCafes {
		if fav.ID == cafeID {
			return customer, nil // already a favorite
		}
	}

	if err := s.db.Model(customer).Association("FavoriteCafes").Append(&cafe); err != nil {
		return nil, err
	}
	return s.Profile(customerID)
}

// RemoveFavoriteCafe deletes zero-or-one rows from the favorites join table
func (s *FavoriteService) RemoveFavoriteCafe(customerID, cafeID uint) (*models.Customer, error) {
	customer, err := s.Profile(customerID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(customer).Association("FavoriteCafes").Delete(&models.Cafe{ID: cafeID}); err != nil {
		return nil, err
	}
	return s.Profile(customerID)
}

// AddFavoriteMenuItem upserts (customer, menu item) into the favorites join table
func (s *FavoriteService) AddFavoriteMenuItem(customerID, menuItemID uint) (*models.Customer, error) {
	customer, err := s.Profile(customerID)
	if err != nil {
		return nil, err
	}

	var item models.MenuItem
	if err := s.db.First(&item, menuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: menu item %d", ErrNotFound, menuItemID)
		}
		return nil, err
	}

	for _, fav := range customer.FavoriteMenuItems {
		if fav.ID == menuItemID {
			return customer, nil // already a favorite
		}
	}

	if err := s.db.Model(customer).Association("FavoriteMenuItems").Append(&item); err != nil {
		return nil, err
	}
	return s.Profile(customerID)
}

// RemoveFavoriteMenuItem deletes zero-or-one rows from the favorites join table
func (s *FavoriteService) RemoveFavoriteMenuItem(customerID, menuItemID uint) (*models.Customer, error) {
	customer, err := s.Profile(customerID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(customer).Association("FavoriteMenuItems").Delete(&models.MenuItem{ID: menuItemID}); err != nil {
		return nil, err
	}
	return s.Profile(customerID)
}
