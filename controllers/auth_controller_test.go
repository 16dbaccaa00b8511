package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caffio-app/caffio-api/middleware"
	"github.com/caffio-app/caffio-api/models"
)

func TestAdminSignupCreatesUserAndCafe(t *testing.T) {
	db := setupControllerTestDB(t)
	router := newTestRouter()

	w, response := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", map[string]interface{}{
		"name":      "Kendall",
		"email":     "owner@cornercafe.com",
		"password":  "secret123",
		"cafe_name": "Corner Cafe",
		"address":   "12 Bean Street",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])

	user := data["user"].(map[string]interface{})
	cafe := data["cafe"].(map[string]interface{})
	assert.Equal(t, "owner@cornercafe.com", user["email"])
	assert.Equal(t, "Corner Cafe", cafe["name"])
	assert.NotContains(t, w.Body.String(), "password")

	// The owner link points both ways
	userID := uint(user["id"].(float64))
	cafeID := uint(cafe["id"].(float64))

	var storedCafe models.Cafe
	assert.NoError(t, db.First(&storedCafe, cafeID).Error)
	assert.NotNil(t, storedCafe.OwnerID)
	assert.Equal(t, userID, *storedCafe.OwnerID)

	var storedUser models.User
	assert.NoError(t, db.First(&storedUser, userID).Error)
	assert.NotNil(t, storedUser.CafeID)
	assert.Equal(t, cafeID, *storedUser.CafeID)

	// Default schedule is seeded at signup
	assert.Len(t, storedCafe.BusinessHours, 7)
	assert.Equal(t, "08:00", storedCafe.BusinessHours["monday"].Open)
	assert.Equal(t, "20:00", storedCafe.BusinessHours["monday"].Close)

	// The token identifies an admin account
	claims, err := middleware.ParseToken(data["token"].(string))
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.AccountID)
	assert.Equal(t, middleware.SubjectAdmin, claims.Kind)
}

func TestAdminSignupDuplicateEmailRollsBack(t *testing.T) {
	db := setupControllerTestDB(t)
	router := newTestRouter()

	body := map[string]interface{}{
		"name":      "Kendall",
		"email":     "owner@cornercafe.com",
		"password":  "secret123",
		"cafe_name": "Corner Cafe",
	}
	w, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	body["cafe_name"] = "Second Cafe"
	w, response := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(response))

	// The second cafe was rolled back with the failed user insert
	var cafeCount int64
	db.Model(&models.Cafe{}).Count(&cafeCount)
	assert.Equal(t, int64(1), cafeCount)
}

func TestAdminSignupValidation(t *testing.T) {
	setupControllerTestDB(t)
	router := newTestRouter()

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "missing cafe name",
			body: map[string]interface{}{
				"name":     "Kendall",
				"email":    "owner@cornercafe.com",
				"password": "secret123",
			},
		},
		{
			name: "short password",
			body: map[string]interface{}{
				"name":      "Kendall",
				"email":     "owner@cornercafe.com",
				"password":  "abc",
				"cafe_name": "Corner Cafe",
			},
		},
		{
			name: "bad email",
			body: map[string]interface{}{
				"name":      "Kendall",
				"email":     "not-an-email",
				"password":  "secret123",
				"cafe_name": "Corner Cafe",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, response := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", errorCode(response))
		})
	}
}

func TestAdminLogin(t *testing.T) {
	db := setupControllerTestDB(t)
	router := newTestRouter()

	hash, err := middleware.HashPassword("secret123")
	assert.NoError(t, err)
	cafe := models.Cafe{Name: "Corner Cafe", BusinessHours: models.DefaultBusinessHours()}
	assert.NoError(t, db.Create(&cafe).Error)
	user := models.User{Name: "Kendall", Email: "owner@cornercafe.com", PasswordHash: hash, CafeID: &cafe.ID}
	assert.NoError(t, db.Create(&user).Error)

	w, response := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "owner@cornercafe.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	loggedIn := data["user"].(map[string]interface{})
	// Login resolves the owner's cafe alongside the account
	assert.Equal(t, "Corner Cafe", loggedIn["cafe"].(map[string]interface{})["name"])

	w, response = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "owner@cornercafe.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(response))

	w, response = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{
		"email":    "nobody@cornercafe.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(response))
}
