package models

import "time"

// Order statuses, in forward order. Cancelled is reachable from any
// non-terminal status; completed and cancelled are terminal.
const (
	OrderStatusPending        = "pending"
	OrderStatusPrinted        = "printed"
	OrderStatusPreparing      = "preparing"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
)

// Delivery methods
const (
	DeliveryMethodDelivery = "delivery"
	DeliveryMethodPickup   = "pickup"
)

// Payment methods
const (
	PaymentMethodPix  = "pix"
	PaymentMethodCard = "card"
	PaymentMethodCash = "cash"
)

type Order struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Token string `gorm:"type:varchar(64);uniqueIndex;not null" json:"token"`

	// Customer snapshot at checkout time; address fields blank for pickup.
	CustomerName  string `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone string `gorm:"type:varchar(20);not null" json:"customer_phone"`
	Street        string `gorm:"type:varchar(255)" json:"street"`
	Number        string `gorm:"type:varchar(20)" json:"number"`
	Complement    string `gorm:"type:varchar(255)" json:"complement"`
	Neighborhood  string `gorm:"type:varchar(100)" json:"neighborhood"`

	DeliveryMethod string  `gorm:"type:varchar(20);not null" json:"delivery_method"`
	PaymentMethod  string  `gorm:"type:varchar(20);not null" json:"payment_method"`
	Subtotal       float64 `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	DeliveryFee    float64 `gorm:"type:decimal(10,2);not null" json:"delivery_fee"`
	Total          float64 `gorm:"type:decimal(10,2);not null" json:"total"`
	Observations   string  `gorm:"type:text" json:"observations"`
	Status         string  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	TestOrder      bool    `gorm:"not null;default:false" json:"test_order"`

	CourierID        *uint      `gorm:"index" json:"courier_id,omitempty"`
	Courier          *Courier   `gorm:"foreignKey:CourierID" json:"courier,omitempty"`
	CourierName      string     `gorm:"type:varchar(255)" json:"courier_name"`
	AssignedAt       *time.Time `json:"assigned_at,omitempty"`
	DeliveredAt      *time.Time `json:"delivered_at,omitempty"`
	EstimatedMinutes int        `json:"estimated_minutes"`

	Items     []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
}

func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusCancelled
}
