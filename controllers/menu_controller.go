package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/models"
	"github.com/caffio-app/caffio-api/services"
)

// CreateMenuRequest represents the request body for creating a menu
type CreateMenuRequest struct {
	CafeID uint   `json:"cafe_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Active *bool  `json:"active"`
}

// CreateMenuItemRequest represents the request body for creating a menu item
type CreateMenuItemRequest struct {
	MenuID         uint                  `json:"menu_id" binding:"required"`
	Name           string                `json:"name" binding:"required"`
	Description    string                `json:"description"`
	Price          *float64              `json:"price" binding:"required,gte=0"`
	Currency       string                `json:"currency"`
	Category       *string               `json:"category"`
	Customizations models.Customizations `json:"customizations"`
}

// UpdateMenuItemRequest represents the request body for updating a menu item
type UpdateMenuItemRequest struct {
	Name           *string                `json:"name"`
	Description    *string                `json:"description"`
	Price          *float64               `json:"price"`
	Category       *string                `json:"category"`
	Customizations *models.Customizations `json:"customizations"`
}

// attachMenuImageURLs resolves presigned image URLs for every item on the
// given menus. URL failures are logged and left empty rather than failing
// the read path.
func attachMenuImageURLs(menus []models.Menu) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	for i := range menus {
		attachItemImageURLs(menus[i].Items)
	}
}

func attachItemImageURLs(items []models.MenuItem) {
	imageService := services.GetImageService()
	if imageService == nil {
		return
	}
	for i := range items {
		if items[i].ImageS3Key == nil {
			continue
		}
		url, err := imageService.GetImageURL(*items[i].ImageS3Key)
		if err != nil {
			log.Printf("failed to generate image URL for menu item %d: %v", items[i].ID, err)
			continue
		}
		items[i].ImageURL = &url
	}
}

// GetMenusByCafe handles GET /api/v1/menus/:cafeId - active menus with items
func GetMenusByCafe(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
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

	var menus []models.Menu
	err := db.Preload("Items").
		Where("cafe_id = ? AND active = ?", cafeID, true).
		Find(&menus).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list menus",
			},
		})
		return
	}

	attachMenuImageURLs(menus)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    menus,
	})
}

// CreateMenu handles POST /api/v1/menus
func CreateMenu(c *gin.Context) {
	var req CreateMenuRequest
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
	if err := db.First(&cafe, req.CafeID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Cafe not found",
			},
		})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	menu := models.Menu{
		CafeID: req.CafeID,
		Name:   req.Name,
		Active: active,
	}

	if err := db.Create(&menu).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create menu",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    menu,
	})
}

// CreateMenuItem handles POST /api/v1/menus/items
func CreateMenuItem(c *gin.Context) {
	var req CreateMenuItemRequest
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
	var menu models.Menu
	if err := db.First(&menu, req.MenuID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu not found",
			},
		})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	item := models.MenuItem{
		MenuID:         req.MenuID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          *req.Price,
		Currency:       currency,
		Category:       req.Category,
		Customizations: req.Customizations,
	}

	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create menu item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /api/v1/menus/items/:id
func UpdateMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMenuItemRequest
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
	var item models.MenuItem
	if err := db.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must not be negative",
				},
			})
			return
		}
		updates["price"] = *req.Price
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Customizations != nil {
		updates["customizations"] = *req.Customizations
	}

	if len(updates) > 0 {
		if err := db.Model(&item).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update menu item",
				},
			})
			return
		}
		if err := db.First(&item, itemID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to fetch updated menu item",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /api/v1/menus/items/:id.
// Historical order lines keep their snapshots; only the live item goes away.
func DeleteMenuItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var item models.MenuItem
	if err := db.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	if err := db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete menu item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// UploadMenuItemImage handles POST /api/v1/menus/items/:id/image - uploads a
// photo for a menu item and stores its S3 key
func UploadMenuItemImage(c *gin.Context) {
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()
	var item models.MenuItem
	if err := db.First(&item, itemID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": "Menu item not found",
			},
		})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Image file is required",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Image storage is not configured",
			},
		})
		return
	}

	imageKey, err := imageService.UploadImage(fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	// Replace any previous image
	if item.ImageS3Key != nil && *item.ImageS3Key != imageKey {
		if err := imageService.DeleteImage(*item.ImageS3Key); err != nil {
			log.Printf("failed to delete previous image %s: %v", *item.ImageS3Key, err)
		}
	}

	if err := db.Model(&item).Update("image_s3_key", imageKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save image reference",
			},
		})
		return
	}

	item.ImageS3Key = &imageKey
	if url, err := imageService.GetImageURL(imageKey); err == nil {
		item.ImageURL = &url
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}
