package models

import "time"

// Menu item categories
const (
	CategorySmall     = "small"
	CategoryMedium    = "medium"
	CategoryLarge     = "large"
	CategoryExecutive = "executive"
)

type MenuItem struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	Name         string        `gorm:"type:varchar(255);not null" json:"name"`
	Description  string        `gorm:"type:text" json:"description"`
	Price        float64       `gorm:"type:decimal(10,2);not null" json:"price"`
	Category     string        `gorm:"type:varchar(20);not null" json:"category"`
	DayOfWeek    string        `gorm:"type:varchar(20)" json:"day_of_week"`
	ImageURL     *string       `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	// PrepTime is the estimated preparation time in minutes.
	PrepTime     int           `gorm:"not null;default:0" json:"prep_time"`
	Available    bool          `gorm:"not null;default:true" json:"available"`
	OptionGroups []OptionGroup `gorm:"many2many:menu_item_option_groups" json:"option_groups"`
	CreatedAt    time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"not null" json:"updated_at"`
}

func ValidCategory(c string) bool {
	switch c {
	case CategorySmall, CategoryMedium, CategoryLarge, CategoryExecutive:
		return true
	}
	return false
}
