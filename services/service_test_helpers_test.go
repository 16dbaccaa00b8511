package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/models"
)

// setupServiceTestDB creates an in-memory database with the full schema
func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Cafe{},
		&models.Menu{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.PaymentIntent{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// seedCatalog creates a customer, cafe, menu and two items used across tests
func seedCatalog(t *testing.T, db *gorm.DB) (models.Customer, models.Cafe, models.MenuItem, models.MenuItem) {
	t.Helper()

	customer := models.Customer{Name: "Ada", Email: "ada@example.com", PasswordHash: "x"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}

	cafe := models.Cafe{Name: "Corner Cafe", BusinessHours: models.DefaultBusinessHours()}
	if err := db.Create(&cafe).Error; err != nil {
		t.Fatalf("Failed to seed cafe: %v", err)
	}

	menu := models.Menu{CafeID: cafe.ID, Name: "Drinks", Active: true}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("Failed to seed menu: %v", err)
	}

	itemA := models.MenuItem{MenuID: menu.ID, Name: "Latte", Description: "Oat milk", Price: 5.30, Currency: "USD"}
	itemB := models.MenuItem{MenuID: menu.ID, Name: "Croissant", Price: 6.80, Currency: "USD"}
	if err := db.Create(&itemA).Error; err != nil {
		t.Fatalf("Failed to seed menu item: %v", err)
	}
	if err := db.Create(&itemB).Error; err != nil {
		t.Fatalf("Failed to seed menu item: %v", err)
	}

	return customer, cafe, itemA, itemB
}
