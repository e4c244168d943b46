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

// PaymentGatewayClient is what the webhook needs from the gateway: payment
// lookup for notification verification.
type PaymentGatewayClient interface {
	GetPayment(paymentID string) (*services.PaymentInfo, error)
}

type PaymentController struct {
	DB      *gorm.DB
	Gateway PaymentGatewayClient
}

func NewPaymentController(db *gorm.DB, gateway PaymentGatewayClient) *PaymentController {
	return &PaymentController{DB: db, Gateway: gateway}
}

// Webhook handles Mercado Pago payment notifications. The notification only
// carries the payment id; the actual status is fetched back from the API so a
// forged POST cannot move an order. Always answers 200 for events we ignore,
// otherwise Mercado Pago keeps retrying.
func (pc *PaymentController) Webhook(c *gin.Context) {
	var notification struct {
		Type string `json:"type"`
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := c.ShouldBindJSON(&notification); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if notification.Type != "payment" || notification.Data.ID == "" {
		c.Status(http.StatusOK)
		return
	}

	info, err := pc.Gateway.GetPayment(notification.Data.ID)
	if err != nil {
		utils.ErrorLogger.Printf("Webhook: error fetching payment %s: %v", notification.Data.ID, err)
		utils.RespondError(c, http.StatusBadGateway, errors.New("payment lookup failed"))
		return
	}

	utils.InfoLogger.Printf("Webhook: payment %s is %s (order %s)", info.ID, info.Status, info.ExternalReference)
	if info.Status != services.PaymentStatusApproved {
		c.Status(http.StatusOK)
		return
	}

	var order models.Order
	if err := pc.DB.Where("token = ?", info.ExternalReference).First(&order).Error; err != nil {
		utils.ErrorLogger.Printf("Webhook: order %s not found", info.ExternalReference)
		c.Status(http.StatusOK)
		return
	}

	// Approval advances pending -> printed so the kitchen sees the order as
	// confirmed. Repeat notifications for an already-moved order are fine;
	// the transition guard makes them no-ops.
	if order.Status == models.OrderStatusPending {
		if err := services.Transition(pc.DB, &order, models.OrderStatusPrinted); err != nil {
			utils.ErrorLogger.Printf("Webhook: error confirming order %s: %v", order.Token, err)
			c.Status(http.StatusOK)
			return
		}
		realtime.BroadcastOrderUpdated(order)
	}

	c.Status(http.StatusOK)
}
