package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/config"
	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/router"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
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
	ensureSettings(db)

	if err := services.GetMercadoPagoService().ValidateConfig(); err != nil {
		utils.ErrorLogger.Printf("Online payments unavailable: %v", err)
	}

	var settings models.StoreSettings
	db.First(&settings)
	renderer := services.NewTicketService(settings.Name)

	// Only the designated terminal runs the auto-print loop against the
	// shared database; other instances serve the same API without printing.
	monitor := services.NewPrintMonitor(db, renderer, nil, config.IsPrintTerminal())
	monitor.Start()
	defer monitor.Stop()

	r := router.SetupRouter(db, renderer, nil)
	r.SetTrustedProxies([]string{"127.0.0.1"})

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
		&models.StoreSettings{},
		&models.Neighborhood{},
		&models.Customer{},
		&models.OptionGroup{},
		&models.Option{},
		&models.MenuItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemOption{},
		&models.Courier{},
		&models.CashMovement{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}

// ensureSettings guarantees the single settings row exists so every read can
// use First without a not-found branch.
func ensureSettings(db *gorm.DB) {
	var count int64
	db.Model(&models.StoreSettings{}).Count(&count)
	if count == 0 {
		if err := db.Create(&models.StoreSettings{}).Error; err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed store settings: %v", err)
		}
		utils.InfoLogger.Println("Seeded default store settings.")
	}
}
