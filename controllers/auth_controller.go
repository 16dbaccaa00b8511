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

// AdminSignupRequest represents the request body for cafe-owner signup.
// Signup creates the owner account and the cafe together.
type AdminSignupRequest struct {
	Name      string   `json:"name" binding:"required"`
	Email     string   `json:"email" binding:"required,email"`
	Password  string   `json:"password" binding:"required,min=6"`
	CafeName  string   `json:"cafe_name" binding:"required"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// AdminLoginRequest represents the request body for cafe-owner login
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminSignup handles POST /api/v1/auth/signup - creates the Cafe and the
// owner User in one transaction, geocoding the address when coordinates are
// absent and seeding the default business hours.
func AdminSignup(c *gin.Context) {
	var req AdminSignupRequest
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

	lat, lon := req.Latitude, req.Longitude
	if (lat == nil || lon == nil) && req.Address != "" {
		// Best effort: a geocoding failure just leaves the cafe without
		// coordinates, it never blocks signup.
		if geocoder := services.GetGeocodeService(); geocoder != nil {
			if coords := geocoder.Geocode(c.Request.Context(), req.Address); coords != nil {
				lat, lon = &coords.Latitude, &coords.Longitude
			}
		}
	}

	cafe := models.Cafe{
		Name:          req.CafeName,
		Address:       req.Address,
		Latitude:      lat,
		Longitude:     lon,
		BusinessHours: models.DefaultBusinessHours(),
	}
	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
	}

	db := config.GetDB()
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cafe).Error; err != nil {
			return err
		}
		user.CafeID = &cafe.ID
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Model(&cafe).Update("owner_id", user.ID).Error
	})
	if err != nil {
		if isDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "EMAIL_EXISTS",
					"message": "A user with this email already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create account",
			},
		})
		return
	}

	token, err := middleware.GenerateToken(user.ID, middleware.SubjectAdmin)
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

	ownerID := user.ID
	cafe.OwnerID = &ownerID

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"user":  user,
			"cafe":  cafe,
			"token": token,
		},
	})
}

// AdminLogin handles POST /api/v1/auth/login
func AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
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
	var user models.User
	if err := db.Preload("Cafe").Where("email = ?", req.Email).First(&user).Error; err != nil {
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
				"message": "Failed to look up user",
			},
		})
		return
	}

	if err := middleware.CheckPassword(req.Password, user.PasswordHash); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid email or password",
			},
		})
		return
	}

	token, err := middleware.GenerateToken(user.ID, middleware.SubjectAdmin)
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
			"user":  user,
			"token": token,
		},
	})
}
