package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/services"
)

// paymentProvider is the processor used by the payment endpoints. Defaults to
// Stripe in main; tests inject a mock.
var paymentProvider services.PaymentProvider

// SetPaymentProvider sets the payment provider (wired in main, mocked in tests)
func SetPaymentProvider(p services.PaymentProvider) {
	paymentProvider = p
}

// CreatePaymentIntentRequest represents the request body for creating an intent
type CreatePaymentIntentRequest struct {
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Currency   string `json:"currency" binding:"required"`
	OrderID    *uint  `json:"order_id"`
	CustomerID *uint  `json:"customer_id"`
}

// CreatePaymentIntent handles POST /api/v1/payments/create-intent
func CreatePaymentIntent(c *gin.Context) {
	var req CreatePaymentIntentRequest
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

	if paymentProvider == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Payment provider is not configured",
			},
		})
		return
	}

	paymentService := services.NewPaymentService(config.GetDB(), paymentProvider)
	result, err := paymentService.CreateIntent(req.Amount, req.Currency, req.OrderID, req.CustomerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"payment_intent_id": result.PaymentIntentID,
			"client_secret":     result.ClientSecret,
		},
	})
}

// GetPaymentIntent handles GET /api/v1/payments/intent/:id
func GetPaymentIntent(c *gin.Context) {
	providerID := c.Param("id")
	if providerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Intent id is required",
			},
		})
		return
	}

	if paymentProvider == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Payment provider is not configured",
			},
		})
		return
	}

	paymentService := services.NewPaymentService(config.GetDB(), paymentProvider)
	result, err := paymentService.RetrieveIntent(providerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}
