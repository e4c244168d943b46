package models

import "time"

// Courier statuses
const (
	CourierStatusAvailable   = "available"
	CourierStatusOnRoute     = "on_route"
	CourierStatusUnavailable = "unavailable"
	CourierStatusOffline     = "offline"
)

type Courier struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Phone        string  `gorm:"type:varchar(20);not null" json:"phone"`
	Document     string  `gorm:"type:varchar(20)" json:"document"`
	VehicleType  string  `gorm:"type:varchar(30)" json:"vehicle_type"`
	VehicleModel string  `gorm:"type:varchar(50)" json:"vehicle_model"`
	VehiclePlate string  `gorm:"type:varchar(10)" json:"vehicle_plate"`
	VehicleColor string  `gorm:"type:varchar(30)" json:"vehicle_color"`
	Status       string  `gorm:"type:varchar(20);not null;default:'offline'" json:"status"`
	MaxOrders    int     `gorm:"not null;default:1" json:"max_orders"`
	Rating       float64 `gorm:"type:decimal(3,2);not null;default:5" json:"rating"`
	Deliveries   int     `gorm:"not null;default:0" json:"deliveries"`
	// Soft delete: inactive couriers keep their delivery history.
	Active       bool      `gorm:"not null;default:true" json:"active"`
	Login        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func ValidCourierStatus(s string) bool {
	switch s {
	case CourierStatusAvailable, CourierStatusOnRoute, CourierStatusUnavailable, CourierStatusOffline:
		return true
	}
	return false
}
