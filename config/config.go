package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database configured via environment variables.
// DB_DRIVER=sqlite keeps everything in a local file, which is handy for
// demos; anything else is treated as MySQL.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "sqlite" {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = "orderdesk.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			getenv("DB_USER", "root"),
			os.Getenv("DB_PASSWORD"),
			getenv("DB_HOST", "127.0.0.1"),
			getenv("DB_PORT", "3306"),
			getenv("DB_NAME", "orderdesk"),
		)
	}
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
