package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectVendedorDB opens the secondary MySQL database holding the
// salesperson/geofence tables. Returns nil when no DSN is configured; the
// caller then falls back to the primary database.
func ConnectVendedorDB() *gorm.DB {
	dsn := os.Getenv("VENDEDOR_DATABASE_URL")
	if dsn == "" {
		return nil
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to vendedor database. \n", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Vendedor database connection established")
	return db
}
