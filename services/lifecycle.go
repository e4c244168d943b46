package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
)

// Errors returned by the order lifecycle.
var (
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrCourierRequired   = errors.New("a courier must be assigned before dispatch")
	ErrOrderTerminal     = errors.New("order is in a terminal status")
)

// allowedTransitions defines valid status transitions. Key is the current
// status, value the set of statuses it may move to. Terminal statuses have no
// entry. Backward moves are rejected here, not left to UI affordances.
var allowedTransitions = map[string][]string{
	models.OrderStatusPending:        {models.OrderStatusPrinted, models.OrderStatusCancelled},
	models.OrderStatusPrinted:        {models.OrderStatusPreparing, models.OrderStatusCancelled},
	models.OrderStatusPreparing:      {models.OrderStatusOutForDelivery, models.OrderStatusCancelled},
	models.OrderStatusOutForDelivery: {models.OrderStatusCompleted, models.OrderStatusCancelled},
}

func ValidOrderStatus(s string) bool {
	switch s {
	case models.OrderStatusPending, models.OrderStatusPrinted, models.OrderStatusPreparing,
		models.OrderStatusOutForDelivery, models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransition checks whether moving from current to next is allowed.
func CanTransition(current, next string) error {
	if !ValidOrderStatus(next) {
		return ErrInvalidStatus
	}
	allowed, ok := allowedTransitions[current]
	if !ok {
		return fmt.Errorf("%w: order is %s", ErrOrderTerminal, current)
	}
	for _, s := range allowed {
		if s == next {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, next)
}

// Transition validates and applies a status change, running its side effects
// in the same transaction. Entering cancelled restocks every tracked option by
// the ordered quantity; the transition guard makes the restock idempotent
// (cancelled -> cancelled is rejected, so stock can never be restored twice).
// Dispatch requires an assigned courier.
func Transition(db *gorm.DB, order *models.Order, next string) error {
	if err := CanTransition(order.Status, next); err != nil {
		return err
	}
	if next == models.OrderStatusOutForDelivery && order.CourierID == nil {
		return ErrCourierRequired
	}

	return db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		updates := map[string]interface{}{
			"status":     next,
			"updated_at": now,
		}
		if next == models.OrderStatusCompleted && order.DeliveryMethod == models.DeliveryMethodDelivery {
			updates["delivered_at"] = now
		}

		// Guard against a concurrent transition between our read and write.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: order status changed concurrently", ErrInvalidTransition)
		}

		if next == models.OrderStatusCancelled {
			if err := restockOrder(tx, order.ID); err != nil {
				return err
			}
		}

		order.Status = next
		order.UpdatedAt = now
		if v, ok := updates["delivered_at"].(time.Time); ok {
			order.DeliveredAt = &v
		}
		return nil
	})
}

// restockOrder returns the ordered quantity of every stock-tracked option to
// inventory. Only the stock count changes: an option an operator manually
// disabled stays disabled even after restocking.
func restockOrder(tx *gorm.DB, orderID uint) error {
	var items []models.OrderItem
	if err := tx.Preload("Options").Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}

	for _, item := range items {
		for _, chosen := range item.Options {
			res := tx.Model(&models.Option{}).
				Where("id = ? AND track_stock = ?", chosen.OptionID, true).
				Update("stock", gorm.Expr("stock + ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
		}
	}
	return nil
}

// ConsumeStock decrements tracked options for a placed order, flooring at
// zero. Called inside the checkout transaction right after the order rows are
// written.
func ConsumeStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		for _, chosen := range item.Options {
			res := tx.Model(&models.Option{}).
				Where("id = ? AND track_stock = ?", chosen.OptionID, true).
				Update("stock", gorm.Expr(
					"CASE WHEN stock > ? THEN stock - ? ELSE 0 END",
					item.Quantity, item.Quantity))
			if res.Error != nil {
				return res.Error
			}
		}
	}
	return nil
}
