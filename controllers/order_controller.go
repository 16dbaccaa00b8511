package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/models"
	"github.com/caffio-app/caffio-api/services"
)

// OrderLineRequest is one line of an order-create request
type OrderLineRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	CustomerID      uint               `json:"customer_id" binding:"required"`
	CafeID          uint               `json:"cafe_id" binding:"required"`
	Items           []OrderLineRequest `json:"items" binding:"required,min=1,dive"`
	OrderType       string             `json:"order_type" binding:"required"`
	DeliveryAddress *string            `json:"delivery_address"`
	CustomerPhone   *string            `json:"customer_phone"`
	CustomerName    *string            `json:"customer_name"`
	Notes           *string            `json:"notes"`
}

// UpdateOrderStatusRequest represents the request body for a status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateOrder handles POST /api/v1/orders
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	lines := make([]services.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, services.OrderLine{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.Create(services.CreateOrderInput{
		CustomerID:      req.CustomerID,
		CafeID:          req.CafeID,
		Items:           lines,
		OrderType:       models.OrderType(req.OrderType),
		DeliveryAddress: req.DeliveryAddress,
		CustomerPhone:   req.CustomerPhone,
		CustomerName:    req.CustomerName,
		Notes:           req.Notes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders?cafeId=|customerId= - newest first
func ListOrders(c *gin.Context) {
	cafeIDStr := c.Query("cafeId")
	customerIDStr := c.Query("customerId")

	orderService := services.NewOrderService(config.GetDB())

	switch {
	case cafeIDStr != "":
		cafeID, err := strconv.ParseUint(cafeIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid cafeId parameter",
				},
			})
			return
		}
		orders, err := orderService.FindByCafe(uint(cafeID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})

	case customerIDStr != "":
		customerID, err := strconv.ParseUint(customerIDStr, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Invalid customerId parameter",
				},
			})
			return
		}
		orders, err := orderService.FindByCustomer(uint(customerID))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})

	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Either cafeId or customerId query parameter is required",
			},
		})
	}
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.FindByID(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status. Any valid status
// is accepted regardless of the current one.
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "status is required",
			},
		})
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.UpdateStatus(orderID, models.OrderStatus(req.Status))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderQRCode handles GET /api/v1/orders/:id/qrcode - PNG QR encoding the
// order reference, shown at the counter for pickup verification
func GetOrderQRCode(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.FindByID(orderID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	qrData := fmt.Sprintf("caffio:order:%d", order.ID)
	png, err := qrcode.Encode(qrData, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Failed to generate QR code",
			},
		})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
