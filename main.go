package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/caffio-app/caffio-api/config"
	"github.com/caffio-app/caffio-api/controllers"
	"github.com/caffio-app/caffio-api/models"
	"github.com/caffio-app/caffio-api/services"
)

func main() {
	log.Println("Starting Caffio API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
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
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Image storage for menu item photos
	if cfg.AWSS3Bucket != "" {
		s3Service, err := services.InitS3Service()
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}
		services.InitImageService(s3Service)
	} else {
		log.Println("AWS_S3_BUCKET not set, menu item images disabled")
	}

	// Geocoder, with a Redis cache when available (the upstream is rate-limited)
	var geocodeCache *services.GeocodeCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse REDIS_URL: %v", err)
		}
		geocodeCache = services.NewGeocodeCache(redis.NewClient(opts), 24*time.Hour)
	}
	services.InitGeocodeService(cfg, geocodeCache)

	// Payment processor
	controllers.SetPaymentProvider(services.NewStripeProvider(cfg))

	router := setupRouter()

	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter builds the Gin engine with all routes registered
func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Cafes
		v1.GET("/cafes", controllers.ListCafes)
		v1.GET("/cafes/:id", controllers.GetCafe)
		v1.PUT("/cafes/:id", controllers.UpdateCafe)

		// Menus
		v1.GET("/menus/:cafeId", controllers.GetMenusByCafe)
		v1.POST("/menus", controllers.CreateMenu)
		v1.POST("/menus/items", controllers.CreateMenuItem)
		v1.PUT("/menus/items/:id", controllers.UpdateMenuItem)
		v1.DELETE("/menus/items/:id", controllers.DeleteMenuItem)
		v1.POST("/menus/items/:id/image", controllers.UploadMenuItemImage)

		// Reviews
		v1.GET("/reviews/:cafeId", controllers.GetReviewsByCafe)
		v1.POST("/reviews", controllers.CreateReview)

		// Customers
		v1.POST("/customers/signup", controllers.CustomerSignup)
		v1.POST("/customers/login", controllers.CustomerLogin)
		v1.GET("/customers/:id", controllers.GetCustomer)
		v1.POST("/customers/:id/favorites/cafes", controllers.AddFavoriteCafe)
		v1.DELETE("/customers/:id/favorites/cafes/:cafeId", controllers.RemoveFavoriteCafe)
		v1.POST("/customers/:id/favorites/menu-items", controllers.AddFavoriteMenuItem)
		v1.DELETE("/customers/:id/favorites/menu-items/:menuItemId", controllers.RemoveFavoriteMenuItem)

		// Orders
		v1.POST("/orders", controllers.CreateOrder)
		v1.GET("/orders", controllers.ListOrders)
		v1.GET("/orders/:id", controllers.GetOrder)
		v1.PUT("/orders/:id/status", controllers.UpdateOrderStatus)
		v1.GET("/orders/:id/qrcode", controllers.GetOrderQRCode)

		// Payments
		v1.POST("/payments/create-intent", controllers.CreatePaymentIntent)
		v1.GET("/payments/intent/:id", controllers.GetPaymentIntent)

		// Admin (cafe owner) auth
		v1.POST("/auth/signup", controllers.AdminSignup)
		v1.POST("/auth/login", controllers.AdminLogin)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Caffio API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
