package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/vendormetrics/vendor-performance-api/config"
	"github.com/vendormetrics/vendor-performance-api/controllers"
	"github.com/vendormetrics/vendor-performance-api/middleware"
	"github.com/vendormetrics/vendor-performance-api/models"
	"github.com/vendormetrics/vendor-performance-api/prometheus"
	"github.com/vendormetrics/vendor-performance-api/services"
)

func main() {
	// Basic logging
	log.Println("Starting Vendor Performance API server...")

	// Load configuration
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
	if err := db.AutoMigrate(&models.Vendor{}, &models.PurchaseOrder{}, &models.HistoricalPerformance{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize the snapshot archive when a bucket is configured
	if archive, err := services.InitArchiveService(); err != nil {
		log.Fatalf("Failed to initialize snapshot archive: %v", err)
	} else if archive != nil {
		log.Printf("Snapshot archive enabled (bucket %s)", cfg.AWSS3Bucket)
	}

	// Initialize Gin router
	router := gin.Default()
	router.Use(cors.Default())
	router.Use(middleware.RequestID())
	router.Use(prometheus.Middleware())

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(prometheus.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Database status endpoint
		v1.GET("/database/status", databaseStatus)

		// Vendor routes
		v1.GET("/vendors", controllers.ListVendors)
		v1.POST("/vendors", controllers.CreateVendor)
		v1.GET("/vendors/:id", controllers.GetVendor)
		v1.PUT("/vendors/:id", controllers.UpdateVendor)
		v1.DELETE("/vendors/:id", controllers.DeleteVendor)
		v1.GET("/vendors/:id/performance", middleware.EnsureValidToken(cfg), controllers.GetVendorPerformance)

		// Purchase order routes
		v1.GET("/purchase_orders", controllers.ListPurchaseOrders)
		v1.POST("/purchase_orders", controllers.CreatePurchaseOrder)
		v1.GET("/purchase_orders/:id", controllers.GetPurchaseOrder)
		v1.PUT("/purchase_orders/:id", controllers.UpdatePurchaseOrder)
		v1.DELETE("/purchase_orders/:id", controllers.DeletePurchaseOrder)
		v1.GET("/purchase_orders/:id/acknowledge", middleware.EnsureValidToken(cfg), controllers.GetAcknowledgment)

		// Historical performance routes
		v1.GET("/historical_performances", controllers.ListHistoricalPerformances)
		v1.POST("/historical_performances", controllers.CreateHistoricalPerformance)
	}

	// Start server
	port := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Vendor Performance API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
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

	// Ping the database to verify connection
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

	// Get list of tables
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
