package bootstrap

import (
	"gorm.io/gorm"

	"comgatepay/internal/models"
)

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Payment{})
}
