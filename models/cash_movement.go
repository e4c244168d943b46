package models

import "time"

// Cash movement directions
const (
	CashMovementIn  = "in"
	CashMovementOut = "out"
)

// CashMovement is a manual bookkeeping entry, independent of order revenue.
type CashMovement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Type        string    `gorm:"type:varchar(10);not null" json:"type"`
	Category    string    `gorm:"type:varchar(50);not null" json:"category"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	Amount      float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	OccurredAt  time.Time `gorm:"index;not null" json:"occurred_at"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
