package database

import (
	"fmt"
	"log"

	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/config"
	"github.com/genuinocomercialatacadistaltda-boop/erp-demo-railway-sub003/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Product{},
		&entity.RawMaterial{},

		// Buyer entities
		&entity.Customer{},
		&entity.CustomerPrice{},
		&entity.Employee{},
		&entity.Seller{},

		// Order entities
		&entity.Order{},
		&entity.OrderItem{},
		&entity.StockMovement{},
		&entity.Commission{},

		// Financial entities
		&entity.Receivable{},
		&entity.Boleto{},
		&entity.CardSettlement{},
		&entity.BankAccount{},
		&entity.BankTransaction{},
		&entity.PixCharge{},

		// Promotion entities
		&entity.Coupon{},
		&entity.CouponUsage{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with the default bank account the
// ledger posts against when no explicit account is supplied.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var count int64
	if err := db.Model(&entity.BankAccount{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		account := entity.BankAccount{
			Name: "Conta Principal",
			Bank: "Banco Inter",
		}
		if err := db.Create(&account).Error; err != nil {
			log.Printf("Warning: failed to create default bank account: %v", err)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
