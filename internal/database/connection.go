// internal/database/connection.go
package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shopfront/ecommerce-backend/internal/config"
	"github.com/shopfront/ecommerce-backend/internal/models"
	"github.com/shopfront/ecommerce-backend/internal/repository"
)

var logLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = logger.Warn
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(level),
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying sql.DB: %v", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	} else {
		log.Println("Database connection closed successfully")
	}
}

func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	// gen_random_uuid() lives in pgcrypto before Postgres 13
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto").Error; err != nil {
		return fmt.Errorf("failed to create pgcrypto extension: %w", err)
	}

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductReview{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_bestseller ON products(bestseller) WHERE bestseller",
		"CREATE INDEX IF NOT EXISTS idx_products_search ON products USING GIN(to_tsvector('english', name || ' ' || coalesce(brand, '')))",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_complaint_status ON orders(complaint_status) WHERE complaint_has_complaint",

		// Stock can never be driven below zero, whatever the writer.
		"DO $$ BEGIN ALTER TABLE products ADD CONSTRAINT chk_products_stock_non_negative CHECK (count_in_stock >= 0); EXCEPTION WHEN duplicate_object THEN NULL; END $$",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			log.Printf("Warning: Failed to create index: %s, Error: %v", index, err)
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// SeedAdmin creates the configured admin account when no admin exists yet.
// It works against any UserRepository so the in-memory mode is seeded too.
func SeedAdmin(ctx context.Context, users repository.UserRepository, cfg config.AdminConfig) error {
	adminCount, err := users.CountAdmins(ctx)
	if err != nil {
		return err
	}
	if adminCount > 0 {
		return nil
	}

	if _, err := users.FindByEmail(ctx, cfg.Email); err == nil {
		log.Printf("Warning: admin seed skipped, %s already registered as a customer", cfg.Email)
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	admin := &models.User{
		Name:    cfg.Name,
		Email:   cfg.Email,
		IsAdmin: true,
	}
	if err := admin.SetPassword(cfg.Password); err != nil {
		return fmt.Errorf("failed to set admin password: %w", err)
	}

	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("Default admin user created successfully")
	return nil
}
