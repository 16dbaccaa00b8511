package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caffio-app/caffio-api/models"
)

func floatPtr(f float64) *float64 { return &f }

func TestListCafesSortedByRating(t *testing.T) {
	db := setupControllerTestDB(t)
	router := newTestRouter()

	for _, cafe := range []models.Cafe{
		{Name: "Quiet Corner", RatingAvg: 3.1, BusinessHours: models.DefaultBusinessHours()},
		{Name: "Bean Palace", RatingAvg: 4.8, BusinessHours: models.DefaultBusinessHours()},
		{Name: "Drip Lab", RatingAvg: 4.2, BusinessHours: models.DefaultBusinessHours()},
	} {
		assert.NoError(t, db.Create(&cafe).Error)
	}

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/cafes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].([]interface{})
	assert.Len(t, data, 3)
	names := make([]string, 0, len(data))
	for _, item := range data {
		cafe := item.(map[string]interface{})
		names = append(names, cafe["name"].(string))
		// Every listed cafe carries the computed flag
		_, hasFlag := cafe["is_open"]
		assert.True(t, hasFlag)
	}
	assert.Equal(t, []string{"Bean Palace", "Drip Lab", "Quiet Corner"}, names)
}

func TestListCafesSortedByDistance(t *testing.T) {
	db := setupControllerTestDB(t)
	router := newTestRouter()

	// Reference point is central Berlin
	for _, cafe := range []models.Cafe{
		{Name: "Far Away", Latitude: floatPtr(48.1374), Longitude: floatPtr(11.5755), RatingAvg: 5.0},
		{Name: "Nearby", Latitude: floatPtr(52.5205), Longitude: floatPtr(13.4060), RatingAvg: 1.0},
		{Name: "No Coordinates", RatingAvg: 4.9},
	} {
		assert.NoError(t, db.Create(&cafe).Error)
	}

	w, response := doJSON(t, router, http.MethodGet, "/api/v1/cafes?lat=52.5200&lon=13.4050", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].([]interface{})
	names := make([]string, 0, len(data))
	for _, item := range data {
		names = append(names, item.(map[string]interface{})["name"].(string))
	}
	// Distance beats rating, and cafes without coordinates sort last
	assert.Equal(t, []string{"Nearby", "Far Away", "No Coordinates"}, names)
}

func TestGetCafeWithMenusAndReviews(t *testing.T) {
	db := setupControllerTestDB(t)
	cafe, _, _ := seedCafeWithMenu(t, db)
	router := newTestRouter()

	review := models.Review{CafeID: cafe.ID, Rating: 5}
	assert.NoError(t, db.Create(&review).Error)

	w, response := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/cafes/%d", cafe.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Corner Cafe", data["name"])
	menus := data["menus"].([]interface{})
	assert.Len(t, menus, 1)
	items := menus[0].(map[string]interface{})["items"].([]interface{})
	assert.Len(t, items, 2)
	assert.Len(t, data["reviews"].([]interface{}), 1)

	w, response = doJSON(t, router, http.MethodGet, "/api/v1/cafes/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(response))
}

func TestUpdateCafePartial(t *testing.T) {
	db := setupControllerTestDB(t)
	cafe, _, _ := seedCafeWithMenu(t, db)
	router := newTestRouter()

	w, response := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/cafes/%d", cafe.ID), map[string]interface{}{
		"name":          "Corner Cafe Roastery",
		"theme_primary": "#6f4e37",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Corner Cafe Roastery", data["name"])
	assert.Equal(t, "#6f4e37", data["theme_primary"])

	// Untouched fields survive the partial update
	var reloaded models.Cafe
	assert.NoError(t, db.First(&reloaded, cafe.ID).Error)
	assert.Equal(t, "Corner Cafe Roastery", reloaded.Name)
	assert.Len(t, reloaded.BusinessHours, 7)
}

func TestUpdateCafeBusinessHours(t *testing.T) {
	db := setupControllerTestDB(t)
	cafe, _, _ := seedCafeWithMenu(t, db)
	router := newTestRouter()

	w, response := doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/v1/cafes/%d", cafe.ID), map[string]interface{}{
		"business_hours": map[string]interface{}{
			"monday": map[string]interface{}{"open": "09:30", "close": "17:00", "enabled": true},
			"sunday": map[string]interface{}{"open": "00:00", "close": "00:00", "enabled": false},
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	hours := response["data"].(map[string]interface{})["business_hours"].(map[string]interface{})
	monday := hours["monday"].(map[string]interface{})
	assert.Equal(t, "09:30", monday["open"])
	assert.Equal(t, "17:00", monday["close"])

	var reloaded models.Cafe
	assert.NoError(t, db.First(&reloaded, cafe.ID).Error)
	assert.Equal(t, "09:30", reloaded.BusinessHours["monday"].Open)
	assert.False(t, reloaded.BusinessHours["sunday"].Enabled)

	w, response = doJSON(t, router, http.MethodPut, "/api/v1/cafes/9999", map[string]interface{}{
		"name": "Ghost Cafe",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(response))
}
