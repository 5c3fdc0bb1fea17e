package database

import (
	"gorm.io/gorm"

	"findahand_backend/internal/models"
)

// AutoMigrate creates or updates the schema for all models.
// The uuid_generate_v4 default on primary keys needs the uuid-ossp extension.
func AutoMigrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&models.User{},
		&models.Handyman{},
		&models.Booking{},
		&models.Review{},
	)
}
