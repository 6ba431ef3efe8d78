package models

import "time"

// ReferralCode is an admin-issued invitation code. MaxUses of zero means
// unlimited. UsedCount is only ever changed through an atomic UPDATE so
// concurrent redemptions cannot oversell a code.
type ReferralCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Note      string    `json:"note"`
	MaxUses   int       `gorm:"not null;default:0" json:"max_uses"`
	UsedCount int       `gorm:"not null;default:0" json:"used_count"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketCounter tracks remaining tickets per tier.
type TicketCounter struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Tier      string    `gorm:"uniqueIndex;not null" json:"tier"`
	Remaining int       `gorm:"not null" json:"remaining"`
	Total     int       `gorm:"not null" json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
