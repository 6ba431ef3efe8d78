package migrations

import (
	"github.com/vla-de/kinkly-main-sub000/models"

	"gorm.io/gorm"
)

// Migrate creates the schema at startup if it does not exist.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Application{},
		&models.Payment{},
		&models.ReferralCode{},
		&models.TicketCounter{},
	)
}
