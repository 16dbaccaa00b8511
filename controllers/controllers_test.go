package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/models"
)

// setupControllerTestDB creates an in-memory database with the full schema
// and installs it as the global connection
func setupControllerTestDB(t *testing.T) *gorm.DB {
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

	config.SetDB(db)
	return db
}

// newTestRouter builds a router with the same route table as main
func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/cafes", ListCafes)
		v1.GET("/cafes/:id", GetCafe)
		v1.PUT("/cafes/:id", UpdateCafe)

		v1.GET("/menus/:cafeId", GetMenusByCafe)
		v1.POST("/menus", CreateMenu)
		v1.POST("/menus/items", CreateMenuItem)
		v1.PUT("/menus/items/:id", UpdateMenuItem)
		v1.DELETE("/menus/items/:id", DeleteMenuItem)
		v1.POST("/menus/items/:id/image", UploadMenuItemImage)

		v1.GET("/reviews/:cafeId", GetReviewsByCafe)
		v1.POST("/reviews", CreateReview)

		v1.POST("/customers/signup", CustomerSignup)
		v1.POST("/customers/login", CustomerLogin)
		v1.GET("/customers/:id", GetCustomer)
		v1.POST("/customers/:id/favorites/cafes", AddFavoriteCafe)
		v1.DELETE("/customers/:id/favorites/cafes/:cafeId", RemoveFavoriteCafe)
		v1.POST("/customers/:id/favorites/menu-items", AddFavoriteMenuItem)
		v1.DELETE("/customers/:id/favorites/menu-items/:menuItemId", RemoveFavoriteMenuItem)

		v1.POST("/orders", CreateOrder)
		v1.GET("/orders", ListOrders)
		v1.GET("/orders/:id", GetOrder)
		v1.PUT("/orders/:id/status", UpdateOrderStatus)
		v1.GET("/orders/:id/qrcode", GetOrderQRCode)

		v1.POST("/payments/create-intent", CreatePaymentIntent)
		v1.GET("/payments/intent/:id", GetPaymentIntent)

		v1.POST("/auth/signup", AdminSignup)
		v1.POST("/auth/login", AdminLogin)
	}

	return router
}

// doJSON performs a JSON request against the router and decodes the response
func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "image/png" {
		if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
			t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, response
}

// seedCafeWithMenu creates a cafe, a menu and two priced items
func seedCafeWithMenu(t *testing.T, db *gorm.DB) (models.Cafe, models.MenuItem, models.MenuItem) {
	t.Helper()

	cafe := models.Cafe{Name: "Corner Cafe", BusinessHours: models.DefaultBusinessHours()}
	if err := db.Create(&cafe).Error; err != nil {
		t.Fatalf("Failed to seed cafe: %v", err)
	}

	menu := models.Menu{CafeID: cafe.ID, Name: "Drinks", Active: true}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("Failed to seed menu: %v", err)
	}

	itemA := models.MenuItem{MenuID: menu.ID, Name: "Latte", Price: 5.30, Currency: "USD"}
	itemB := models.MenuItem{MenuID: menu.ID, Name: "Croissant", Price: 6.80, Currency: "USD"}
	if err := db.Create(&itemA).Error; err != nil {
		t.Fatalf("Failed to seed menu item: %v", err)
	}
	if err := db.Create(&itemB).Error; err != nil {
		t.Fatalf("Failed to seed menu item: %v", err)
	}

	return cafe, itemA, itemB
}

// seedCustomer creates a customer account directly in the database
func seedCustomer(t *testing.T, db *gorm.DB, email string) models.Customer {
	t.Helper()

	customer := models.Customer{Name: "Ada", Email: email, PasswordHash: "x"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("Failed to seed customer: %v", err)
	}
	return customer
}

// errorCode extracts the error code from an error envelope
func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}
