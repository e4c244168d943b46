package models

import "time"

type Option struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	GroupID         uint      `gorm:"not null;index" json:"group_id"`
	Name            string    `gorm:"type:varchar(100);not null" json:"name"`
	AdditionalPrice float64   `gorm:"type:decimal(10,2);not null;default:0" json:"additional_price"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	TrackStock      bool      `gorm:"not null;default:false" json:"track_stock"`
	Stock           int       `gorm:"not null;default:0" json:"stock"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

// IsAvailable reports whether the option can currently be chosen. Available is
// the manual flag set by the operator; stock-tracked options additionally need
// stock on hand. Restocking therefore never overrides a manual disable.
func (o Option) IsAvailable() bool {
	return o.Available && (!o.TrackStock || o.Stock > 0)
}
