package controllers

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/models"
	"github.com/caffio-app/caffio-api/services"
	"github.com/caffio-app/caffio-api/utils"
)

// UpdateCafeRequest represents the request body for a partial cafe update
type UpdateCafeRequest struct {
	Name           *string               `json:"name"`
	Address        *string               `json:"address"`
	Latitude       *float64              `json:"latitude"`
	Longitude      *float64              `json:"longitude"`
	ThemePrimary   *string               `json:"theme_primary"`
	ThemeSecondary *string               `json:"theme_secondary"`
	BusinessHours  *models.BusinessHours `json:"business_hours"`
}

// ListCafes handles GET /api/v1/cafes - lists cafes sorted by rating, or by
// distance when lat/lon query parameters are given. Every cafe carries a
// computed is_open flag.
func ListCafes(c *gin.Context) {
	db := config.GetDB()

	var cafes []models.Cafe
	if err := db.Find(&cafes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list cafes",
			},
		})
		return
	}

	now := time.Now()
	for i := range cafes {
		cafes[i].IsOpen = services.IsOpen(cafes[i].BusinessHours, now)
	}

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)

	if latStr != "" && lonStr != "" && latErr == nil && lonErr == nil {
		// Cafes without coordinates sort last
		sort.SliceStable(cafes, func(i, j int) bool {
			di, iOK := cafeDistance(&cafes[i], lat, lon)
			dj, jOK := cafeDistance(&cafes[j], lat, lon)
			if iOK != jOK {
				return iOK
			}
			return di < dj
		})
	} else {
		sort.SliceStable(cafes, func(i, j int) bool {
			return cafes[i].RatingAvg > cafes[j].RatingAvg
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cafes,
	})
}

func cafeDistance(cafe *models.Cafe, lat, lon float64) (float64, bool) {
	if cafe.Latitude == nil || cafe.Longitude == nil {
		return 0, false
	}
	return utils.HaversineKm(lat, lon, *cafe.Latitude, *cafe.Longitude), true
}

// GetCafe handles GET /api/v1/cafes/:id - cafe with menus and reviews
func GetCafe(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var cafe models.Cafe
	err := db.Preload("Menus.Items").Preload("Reviews").First(&cafe, cafeID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Cafe not found",
			},
		})
		return
	}

	cafe.IsOpen = services.IsOpen(cafe.BusinessHours, time.Now())
	attachMenuImageURLs(cafe.Menus)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cafe,
	})
}

// UpdateCafe handles PUT /api/v1/cafes/:id - partial update of profile fields
// and business hours
func UpdateCafe(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCafeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var cafe models.Cafe
	if err := db.First(&cafe, cafeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Cafe not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.ThemePrimary != nil {
		updates["theme_primary"] = *req.ThemePrimary
	}
	if req.ThemeSecondary != nil {
		updates["theme_secondary"] = *req.ThemeSecondary
	}
	if req.BusinessHours != nil {
		updates["business_hours"] = *req.BusinessHours
	}

	if len(updates) > 0 {
		if err := db.Model(&cafe).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update cafe",
				},
			})
			return
		}
		if err := db.First(&cafe, cafeID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch updated cafe",
				},
			})
			return
		}
	}

	cafe.IsOpen = services.IsOpen(cafe.BusinessHours, time.Now())

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cafe,
	})
}
