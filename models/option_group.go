package models

import "time"

// OptionGroup is a named set of add-on choices attached to menu items.
// MaxSelections: 0 = unlimited, 1 = single choice, >1 = capped multi choice.
type OptionGroup struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(100);not null" json:"name"`
	MinSelections int        `gorm:"not null;default:0" json:"min_selections"`
	MaxSelections int        `gorm:"not null;default:0" json:"max_selections"`
	Options       []Option   `gorm:"foreignKey:GroupID" json:"options"`
	MenuItems     []MenuItem `gorm:"many2many:menu_item_option_groups" json:"-"`
	CreatedAt     time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"not null" json:"updated_at"`
}
