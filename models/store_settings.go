package models

import "time"

// StoreSettings is a single-row table with the shared storefront
// configuration. The per-device print-terminal flag is intentionally NOT here:
// it lives in the environment of the machine that owns the printer.
type StoreSettings struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null;default:'Sabor da Casa'" json:"name"`
	Phone   string `gorm:"type:varchar(20)" json:"phone"`
	Address string `gorm:"type:varchar(255)" json:"address"`

	// Business hours as zero-padded HH:MM; closing minute is inclusive.
	OpensAt  string `gorm:"type:varchar(5);not null;default:'08:00'" json:"opens_at"`
	ClosesAt string `gorm:"type:varchar(5);not null;default:'23:00'" json:"closes_at"`

	AutoPrintEnabled      bool `gorm:"not null;default:false" json:"auto_print_enabled"`
	OnlinePaymentsEnabled bool `gorm:"not null;default:false" json:"online_payments_enabled"`
	TestMode              bool `gorm:"not null;default:false" json:"test_mode"`

	// When set, checkout rejects delivery to neighborhoods that are not
	// registered instead of silently charging no fee.
	RejectUnknownNeighborhood bool `gorm:"not null;default:false" json:"reject_unknown_neighborhood"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
