package util

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"umkmotion-otp/config"
	"umkmotion-otp/model"
)

// InitDB connects to Postgres, runs migrations and configures the pool.
// Called only when the persistence mode (or the best-effort sink) needs it.
func InitDB(cfg config.DBConfig) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to Postgres: %v", err)
	}

	log.Println("Running AutoMigrate...")
	err = db.AutoMigrate(
		&model.User{},
		&model.Credential{},
		&model.OtpRecord{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying DB object: %v", err)
	}

	// Recycle connections periodically to avoid stale connection errors
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Println("Database connected, migrated, and pool configured!")
	return db
}
