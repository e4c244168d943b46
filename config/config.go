package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database connection. MySQL in production; set
// DB_DRIVER=sqlite for a local file (or in-memory) database.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "delivery.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	user := getenv("DB_USER", "root")
	pass := os.Getenv("DB_PASSWORD")
	host := getenv("DB_HOST", "127.0.0.1")
	port := getenv("DB_PORT", "3306")
	name := getenv("DB_NAME", "delivery_app")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, name)
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// IsPrintTerminal reports whether this process runs on the machine that owns
// the kitchen printer. Deliberately a per-device environment flag, not a
// shared setting: only one open admin session should ever drive the printer.
func IsPrintTerminal() bool {
	return os.Getenv("PRINT_TERMINAL") == "true"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
