package models

import "time"

// Customer is keyed by normalized phone (digits only) and refreshed with the
// latest name/address on every checkout, so returning customers get a
// pre-filled form.
type Customer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Phone        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Street       string    `gorm:"type:varchar(255)" json:"street"`
	Number       string    `gorm:"type:varchar(20)" json:"number"`
	Complement   string    `gorm:"type:varchar(255)" json:"complement"`
	Neighborhood string    `gorm:"type:varchar(100)" json:"neighborhood"`
	CEP          string    `gorm:"type:varchar(10)" json:"cep"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
