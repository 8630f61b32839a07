package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/velamode/orderdesk/cart"
	"github.com/velamode/orderdesk/config"
	"github.com/velamode/orderdesk/middlewares"
	"github.com/velamode/orderdesk/models"
	"github.com/velamode/orderdesk/router"
	"github.com/velamode/orderdesk/services"
	"github.com/velamode/orderdesk/utils"
	"gorm.io/gorm"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
}

func main() {
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	cartDir := os.Getenv("CART_DIR")
	if cartDir == "" {
		cartDir = "data/carts"
	}
	carts := cart.NewManager(cartDir)

	monitor := services.NewStockMonitor(db)
	if v := os.Getenv("STOCK_CHECK_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			monitor.Interval = d
		}
	}
	monitor.Start()
	defer monitor.Stop()

	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, carts)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderEvent{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
