package models

import "time"

// OrderItem is a frozen copy of a cart line. Name and unit price are snapshots
// taken at checkout so later menu edits never change a placed order.
type OrderItem struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	OrderID    uint              `gorm:"not null;index" json:"order_id"`
	Order      Order             `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MenuItemID uint              `gorm:"not null" json:"menu_item_id"`
	Name       string            `gorm:"type:varchar(255);not null" json:"name"`
	UnitPrice  float64           `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Quantity   int               `gorm:"not null" json:"quantity"`
	Options    []OrderItemOption `gorm:"foreignKey:OrderItemID" json:"options"`
	CreatedAt  time.Time         `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"not null" json:"updated_at"`
}

type OrderItemOption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderItemID uint      `gorm:"not null;index" json:"order_item_id"`
	OptionID    uint      `gorm:"not null" json:"option_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}
