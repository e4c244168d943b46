package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sabordacasa/delivery-app/controllers"
	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/services"
	"github.com/sabordacasa/delivery-app/utils"
)

type stubGateway struct {
	payments map[string]*services.PaymentInfo
	calls    int
}

func (sg *stubGateway) GetPayment(paymentID string) (*services.PaymentInfo, error) {
	sg.calls++
	info, ok := sg.payments[paymentID]
	if !ok {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	return info, nil
}

func setupWebhookRouter(t *testing.T, gateway *stubGateway) (*gin.Engine, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.OrderItemOption{}, &models.Option{})
	if err != nil {
		t.Fatal(err)
	}

	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	router := gin.Default()
	router.POST("/api/payments/webhook", controllers.NewPaymentController(db, gateway).Webhook)
	return router, db
}

func webhookPayload(paymentID string) map[string]interface{} {
	return map[string]interface{}{
		"type": "payment",
		"data": map[string]string{"id": paymentID},
	}
}

func TestWebhookApprovalConfirmsOrder(t *testing.T) {
	gateway := &stubGateway{payments: map[string]*services.PaymentInfo{
		"42": {ID: "42", Status: services.PaymentStatusApproved, ExternalReference: "t-paid"},
	}}
	router, db := setupWebhookRouter(t, gateway)

	db.Create(&models.Order{Token: "t-paid", Status: models.OrderStatusPending})

	w := doJSON(router, "POST", "/api/payments/webhook", webhookPayload("42"))
	assert.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	db.Where("token = ?", "t-paid").First(&order)
	assert.Equal(t, models.OrderStatusPrinted, order.Status)

	// A duplicate notification is acknowledged without moving the order.
	w = doJSON(router, "POST", "/api/payments/webhook", webhookPayload("42"))
	assert.Equal(t, http.StatusOK, w.Code)
	db.Where("token = ?", "t-paid").First(&order)
	assert.Equal(t, models.OrderStatusPrinted, order.Status)
}

func TestWebhookIgnoresNonPaymentEvents(t *testing.T) {
	gateway := &stubGateway{}
	router, _ := setupWebhookRouter(t, gateway)

	w := doJSON(router, "POST", "/api/payments/webhook", map[string]interface{}{
		"type": "merchant_order",
		"data": map[string]string{"id": "1"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, gateway.calls, "non-payment events must not hit the API")
}

func TestWebhookPendingPaymentLeavesOrderAlone(t *testing.T) {
	gateway := &stubGateway{payments: map[string]*services.PaymentInfo{
		"7": {ID: "7", Status: services.PaymentStatusPending, ExternalReference: "t-waiting"},
	}}
	router, db := setupWebhookRouter(t, gateway)

	db.Create(&models.Order{Token: "t-waiting", Status: models.OrderStatusPending})

	w := doJSON(router, "POST", "/api/payments/webhook", webhookPayload("7"))
	assert.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	db.Where("token = ?", "t-waiting").First(&order)
	assert.Equal(t, models.OrderStatusPending, order.Status)
}

func TestWebhookLookupFailure(t *testing.T) {
	gateway := &stubGateway{}
	router, _ := setupWebhookRouter(t, gateway)

	w := doJSON(router, "POST", "/api/payments/webhook", webhookPayload("missing"))
	assert.Equal(t, http.StatusBadGateway, w.Code)
}
