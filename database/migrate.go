package database

import (
	"apptnu_backend/internal/models"

	"gorm.io/gorm"
)

// Migrate runs the schema auto-migration for all persisted models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Payment{},
		&models.Document{},
		&models.WebhookEvent{},
	)
}
