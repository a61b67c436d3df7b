package database

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ngocanhdo/bookstore-api/internal/config"
	"github.com/ngocanhdo/bookstore-api/internal/domain/entity"
	"github.com/ngocanhdo/bookstore-api/pkg/utils"
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

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Identity entities
		&entity.User{},
		&entity.Tenant{},
		&entity.TenantMembership{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.Inventory{},
		&entity.InventoryLog{},

		// Display entities
		&entity.DisplayShelf{},
		&entity.DisplayProduct{},
		&entity.DisplayLog{},

		// Sale entities
		&entity.Customer{},
		&entity.Transaction{},
		&entity.TransactionDetail{},
		&entity.ReturnOrder{},
		&entity.ReturnOrderDetail{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData creates the bootstrap owner account and their store when
// configured via environment variables. Safe to run repeatedly.
func SeedDefaultData(db *gorm.DB) error {
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	storeName := viper.GetString("ADMIN_STORE_NAME")

	if adminEmail == "" || adminPassword == "" {
		return nil
	}
	if storeName == "" {
		storeName = "Main Store"
	}

	log.Println("Seeding default data...")

	var existing entity.User
	if err := db.Where("email = ?", adminEmail).First(&existing).Error; err == nil {
		log.Printf("Admin user already exists: %s", adminEmail)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := entity.User{
		FirstName: "Admin",
		Email:     adminEmail,
		Password:  string(hashedPassword),
		Role:      "owner",
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	tenant := entity.Tenant{
		Name:    storeName,
		Slug:    utils.Slugify(storeName),
		OwnerID: admin.ID,
	}
	if err := db.Create(&tenant).Error; err != nil {
		return fmt.Errorf("failed to create default store: %w", err)
	}

	membership := entity.TenantMembership{
		TenantID: tenant.ID,
		UserID:   admin.ID,
		Role:     "owner",
	}
	if err := db.Create(&membership).Error; err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	log.Printf("Admin user created: %s (store %s)", adminEmail, tenant.Slug)
	return nil
}
