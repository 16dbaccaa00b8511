package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/middleware"
	"github.com/caffio-app/caffio-api/models"
	"github.com/caffio-app/caffio-api/services"
)

// CustomerSignupRequest represents the request body for customer signup
type CustomerSignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// CustomerLoginRequest represents the request body for customer login
type CustomerLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CustomerSignup handles POST /api/v1/customers/signup
func CustomerSignup(c *gin.Context) {
	var req CustomerSignupRequest
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

	hash, err := middleware.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to process password",
			},
		})
		return
	}

	customer := models.Customer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	db := config.GetDB()
	if err := db.Create(&customer).Error; err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMAIL_EXISTS",
					"message": "A customer with this email already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create customer",
			},
		})
		return
	}

	token, err := middleware.GenerateToken(customer.ID, middleware.SubjectCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"customer": customer,
			"token":    token,
		},
	})
}

// CustomerLogin handles POST /api/v1/customers/login
func CustomerLogin(c *gin.Context) {
	var req CustomerLoginRequest
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
	var customer models.Customer
	if err := db.Where("email = ?", req.Email).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Invalid email or password",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to look up customer",
			},
		})
		return
	}

	if err := middleware.CheckPassword(req.Password, customer.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid email or password",
			},
		})
		return
	}

	token, err := middleware.GenerateToken(customer.ID, middleware.SubjectCustomer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to issue session token",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"customer": customer,
			"token":    token,
		},
	})
}

// GetCustomer handles GET /api/v1/customers/:id - profile with resolved favorites
func GetCustomer(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	favoriteService := services.NewFavoriteService(config.GetDB())
	customer, err := favoriteService.Profile(customerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// AddFavoriteCafe handles POST /api/v1/customers/:id/favorites/cafes
func AddFavoriteCafe(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		CafeID uint `json:"cafe_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "cafe_id is required",
			},
		})
		return
	}

	favoriteService := services.NewFavoriteService(config.GetDB())
	customer, err := favoriteService.AddFavoriteCafe(customerID, req.CafeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// RemoveFavoriteCafe handles DELETE /api/v1/customers/:id/favorites/cafes/:cafeId
func RemoveFavoriteCafe(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}

	favoriteService := services.NewFavoriteService(config.GetDB())
	customer, err := favoriteService.RemoveFavoriteCafe(customerID, cafeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// AddFavoriteMenuItem handles POST /api/v1/customers/:id/favorites/menu-items
func AddFavoriteMenuItem(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		MenuItemID uint `json:"menu_item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "menu_item_id is required",
			},
		})
		return
	}

	favoriteService := services.NewFavoriteService(config.GetDB())
	customer, err := favoriteService.AddFavoriteMenuItem(customerID, req.MenuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}

// RemoveFavoriteMenuItem handles DELETE /api/v1/customers/:id/favorites/menu-items/:menuItemId
func RemoveFavoriteMenuItem(c *gin.Context) {
	customerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	menuItemID, ok := parseIDParam(c, "menuItemId")
	if !ok {
		return
	}

	favoriteService := services.NewFavoriteService(config.GetDB())
	customer, err := favoriteService.RemoveFavoriteMenuItem(customerID, menuItemID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    customer,
	})
}
