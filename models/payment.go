package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment method values as stored in the ledger.
const (
	MethodStripe = "Stripe"
	MethodPayPal = "PayPal"
)

// Payment is one confirmed provider transaction. Rows are written exactly
// once and never updated; the unique transaction_id is what keeps duplicate
// webhook deliveries from double-crediting an application.
type Payment struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	ApplicationID string    `gorm:"column:application_id;size:36;index;not null" json:"application_id"`
	PaymentMethod string    `gorm:"not null" json:"payment_method"` // "Stripe" | "PayPal"
	TransactionID string    `gorm:"uniqueIndex;not null" json:"transaction_id"`
	Amount        int64     `gorm:"not null" json:"amount"` // minor units (cents)
	Status        string    `gorm:"not null" json:"status"` // e.g., "succeeded", "completed"
	CreatedAt     time.Time `json:"created_at"`

	Application Application `gorm:"foreignKey:ApplicationID" json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
