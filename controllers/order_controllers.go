package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/realtime"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

type OrderController struct {
	DB       *gorm.DB
	Renderer services.TicketRenderer
	Printer  services.TicketPrinter
}

func NewOrderController(db *gorm.DB, renderer services.TicketRenderer, printer services.TicketPrinter) *OrderController {
	return &OrderController{DB: db, Renderer: renderer, Printer: printer}
}

// GetAllOrders lists orders for the dashboard, newest first. Supports
// ?status=, ?date=YYYY-MM-DD and ?include_test=true filters.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	query := oc.DB.Preload("Items.Options").Preload("Courier").Order("created_at desc")

	if status := c.Query("status"); status != "" {
		if !services.ValidOrderStatus(status) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		query = query.Where("DATE(created_at) = ?", date)
	}
	if c.Query("include_test") != "true" {
		query = query.Where("test_order = ?", false)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items.Options").Preload("Courier").
		First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateStatus advances an order through its lifecycle. Invalid moves answer
// 409 so the dashboard can refresh stale state.
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items.Options").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	if err := services.Transition(oc.DB, &order, input.Status); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidStatus):
			utils.RespondError(c, http.StatusBadRequest, err)
		case errors.Is(err, services.ErrCourierRequired):
			utils.RespondError(c, http.StatusUnprocessableEntity, err)
		default:
			utils.RespondError(c, http.StatusConflict, err)
		}
		return
	}

	utils.InfoLogger.Printf("Order %s -> %s", order.Token, order.Status)
	realtime.BroadcastOrderUpdated(order)

	// Completing a delivery frees the courier and counts the run.
	if order.Status == models.OrderStatusCompleted && order.CourierID != nil {
		oc.releaseCourier(*order.CourierID)
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// AssignCourier puts a courier on the order and marks them on route. The
// dispatcher may send an estimated delivery time in minutes for the tracking
// page; omitted means no estimate is shown.
func (oc *OrderController) AssignCourier(c *gin.Context) {
	var input struct {
		CourierID        uint `json:"courier_id" binding:"required"`
		EstimatedMinutes int  `json:"estimated_minutes" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}
	if order.IsTerminal() {
		utils.RespondError(c, http.StatusConflict, errors.New("order is already closed"))
		return
	}
	if order.DeliveryMethod != models.DeliveryMethodDelivery {
		utils.RespondError(c, http.StatusUnprocessableEntity, errors.New("pickup orders have no courier"))
		return
	}

	var courier models.Courier
	if err := oc.DB.Where("id = ? AND active = ?", input.CourierID, true).First(&courier).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("courier not found"))
		return
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"courier_id":        courier.ID,
			"courier_name":      courier.Name,
			"assigned_at":       now,
			"estimated_minutes": input.EstimatedMinutes,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&courier).Update("status", models.CourierStatusOnRoute).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	order.CourierID = &courier.ID
	order.CourierName = courier.Name
	order.EstimatedMinutes = input.EstimatedMinutes
	courier.Status = models.CourierStatusOnRoute

	utils.InfoLogger.Printf("Courier %s assigned to order %s", courier.Name, order.Token)
	realtime.BroadcastOrderUpdated(order)
	realtime.BroadcastCourierUpdate(courier)

	utils.RespondJSON(c, http.StatusOK, "Courier assigned", order)
}

// Reprint renders and prints the ticket again on demand. Manual reprints
// ignore the auto-print dedup entirely; the order's status does not change.
func (oc *OrderController) Reprint(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items.Options").First(&order, c.Param("id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("order not found"))
		return
	}

	document, err := oc.Renderer.Render(order)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if oc.Printer != nil {
		if err := oc.Printer.Print(order, document); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.InfoLogger.Printf("Ticket reprinted for order %s", order.Token)
	utils.RespondJSON(c, http.StatusOK, "Ticket reprinted", nil)
}

func (oc *OrderController) releaseCourier(courierID uint) {
	var courier models.Courier
	if err := oc.DB.First(&courier, courierID).Error; err != nil {
		utils.ErrorLogger.Printf("Error loading courier %d: %v", courierID, err)
		return
	}

	var onRoute int64
	oc.DB.Model(&models.Order{}).
		Where("courier_id = ? AND status = ?", courierID, models.OrderStatusOutForDelivery).
		Count(&onRoute)

	updates := map[string]interface{}{
		"deliveries": gorm.Expr("deliveries + 1"),
	}
	if onRoute == 0 {
		updates["status"] = models.CourierStatusAvailable
	}
	if err := oc.DB.Model(&courier).Updates(updates).Error; err != nil {
		utils.ErrorLogger.Printf("Error releasing courier %d: %v", courierID, err)
		return
	}

	oc.DB.First(&courier, courierID)
	realtime.BroadcastCourierUpdate(courier)
}
