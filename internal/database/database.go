// Package database opens the relational store and keeps the schema current.
package database

import (
	"fmt"

	"taskhub/backend/internal/config"
	"taskhub/backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the postgres database with the configured pool settings.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	return db, nil
}

// Migrate creates or updates the users, tokens and tasks tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.AuthToken{}, &models.Task{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seed inserts a demo user with a handful of tasks for local development.
// It is a no-op when any task already exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Task{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count tasks: %w", err)
	}
	if count > 0 {
		return nil
	}

	user := models.User{
		Name:  "Demo User",
		Email: "demo@example.com",
		// bcrypt hash of "password"
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	}
	if err := db.Where(models.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
		return fmt.Errorf("failed to seed user: %w", err)
	}

	tasks := []models.Task{
		{Title: "Prepare weekly report", Slug: "prepare-weekly-report", Description: "Summarize sprint progress", Category: models.CategoryWork, UserID: user.ID},
		{Title: "Book dentist appointment", Slug: "book-dentist-appointment", Description: "Ask for a morning slot", Category: models.CategoryPersonal, UserID: user.ID},
		{Title: "Water the plants", Slug: "water-the-plants", Description: "Balcony and kitchen", Category: models.CategoryOther, Finished: true, UserID: user.ID},
		{Title: "Review open pull requests", Slug: "review-open-pull-requests", Description: "Backend repo first", Category: models.CategoryWork, UserID: user.ID},
		{Title: "Plan weekend trip", Slug: "plan-weekend-trip", Description: "Check train tickets", Category: models.CategoryPersonal, UserID: user.ID},
	}
	if err := db.Create(&tasks).Error; err != nil {
		return fmt.Errorf("failed to seed tasks: %w", err)
	}

	return nil
}
