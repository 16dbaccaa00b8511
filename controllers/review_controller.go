package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/services"
)

// CreateReviewRequest represents the request body for creating a review
type CreateReviewRequest struct {
	CafeID       uint    `json:"cafe_id" binding:"required"`
	Rating       int     `json:"rating" binding:"required,gte=1,lte=5"`
	Text         *string `json:"text"`
	CustomerID   *uint   `json:"customer_id"`
	CustomerName *string `json:"customer_name"`
}

// GetReviewsByCafe handles GET /api/v1/reviews/:cafeId - newest first
func GetReviewsByCafe(c *gin.Context) {
	cafeID, ok := parseIDParam(c, "cafeId")
	if !ok {
		return
	}

	ratingService := services.NewRatingService(config.GetDB())
	reviews, err := ratingService.FindByCafe(cafeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    reviews,
	})
}

// CreateReview handles POST /api/v1/reviews - persists the review and
// recomputes the cafe's rating aggregate
func CreateReview(c *gin.Context) {
	var req CreateReviewRequest
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

	ratingService := services.NewRatingService(config.GetDB())
	review, err := ratingService.AddReview(services.AddReviewInput{
		CafeID:       req.CafeID,
		Rating:       req.Rating,
		Text:         req.Text,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    review,
	})
}
