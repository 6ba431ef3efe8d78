// seed/seed.go
package seed

import (
	"errors"
	"log"

	"github.com/vla-de/kinkly-main-sub000/models"

	"gorm.io/gorm"
)

// SeedTicketCounters inserts the launch-tier scarcity counters unless they
// already exist. Remaining counts are deliberately small; scarcity is the
// product.
func SeedTicketCounters(db *gorm.DB) error {
	tiers := []models.TicketCounter{
		{Tier: "The Invitation", Remaining: 150, Total: 150},
		{Tier: "The Inner Sanctum", Remaining: 40, Total: 40},
		{Tier: "The Patron", Remaining: 10, Total: 10},
	}

	for _, tier := range tiers {
		var existing models.TicketCounter
		err := db.Where("tier = ?", tier.Tier).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&tier).Error; err != nil {
			return err
		}
		log.Printf("Seeded ticket counter for tier %q (%d tickets)", tier.Tier, tier.Total)
	}

	return nil
}
