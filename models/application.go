package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Application status values. An application starts at pending_payment and
// only moves forward, driven by a confirmed payment.
const (
	StatusPendingPayment = "pending_payment"
	StatusPendingReview  = "pending_review"
	StatusApproved       = "approved"
	StatusRejected       = "rejected"
)

type Application struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	FullName  string    `gorm:"column:full_name;not null" json:"full_name"`
	Email     string    `gorm:"not null" json:"email"`
	Message   string    `json:"message"`
	Tier      string    `gorm:"not null" json:"tier"` // e.g., "The Invitation"
	Status    string    `gorm:"not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}
