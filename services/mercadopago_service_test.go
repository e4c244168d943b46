package services_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/services"
)

func newTestGateway(baseURL string, production bool) *services.MercadoPagoService {
	return services.NewMercadoPagoService(&services.MercadoPagoConfig{
		AccessToken:  "TEST-token",
		IsProduction: production,
		BaseURL:      baseURL,
		SuccessURL:   "https://store.example/success",
		FailureURL:   "https://store.example/failure",
		WebhookURL:   "https://store.example/webhook",
	})
}

func TestCreatePreference(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/preferences", r.URL.Path)
		assert.Equal(t, "Bearer TEST-token", r.Header.Get("Authorization"))
		json.NewDecoder(r.Body).Decode(&captured)
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{
			"id":                 "pref-123",
			"init_point":         "https://mp.example/live",
			"sandbox_init_point": "https://mp.example/sandbox",
		})
	}))
	defer server.Close()

	order := models.Order{
		Token:         "20260901-120000-abcd1234",
		CustomerName:  "Maria",
		CustomerPhone: "11912345678",
		PaymentMethod: models.PaymentMethodPix,
		DeliveryFee:   7.00,
		Items: []models.OrderItem{
			{Name: "Executivo", UnitPrice: 28.00, Quantity: 2},
		},
	}

	pref, err := newTestGateway(server.URL, true).CreatePreference(order)
	assert.NoError(t, err)
	assert.Equal(t, "pref-123", pref.ID)
	assert.Equal(t, "https://mp.example/live", pref.RedirectURL)

	assert.Equal(t, order.Token, captured["external_reference"])

	payer := captured["payer"].(map[string]interface{})
	assert.Equal(t, "Maria", payer["name"])
	phone := payer["phone"].(map[string]interface{})
	assert.Equal(t, "11912345678", phone["number"])

	items := captured["items"].([]interface{})
	// One line per order item plus the delivery fee line.
	assert.Len(t, items, 2)
	fee := items[1].(map[string]interface{})
	assert.Equal(t, "Taxa de entrega", fee["title"])
}

func TestCreatePreferenceSandboxRedirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":                 "pref-123",
			"init_point":         "https://mp.example/live",
			"sandbox_init_point": "https://mp.example/sandbox",
		})
	}))
	defer server.Close()

	pref, err := newTestGateway(server.URL, false).CreatePreference(models.Order{Token: "t"})
	assert.NoError(t, err)
	assert.Equal(t, "https://mp.example/sandbox", pref.RedirectURL)
}

func TestCreatePreferenceAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid items"}`))
	}))
	defer server.Close()

	_, err := newTestGateway(server.URL, true).CreatePreference(models.Order{Token: "t"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid items")
}

func TestGetPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/payments/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":                 42,
			"status":             "approved",
			"external_reference": "20260901-120000-abcd1234",
		})
	}))
	defer server.Close()

	info, err := newTestGateway(server.URL, true).GetPayment("42")
	assert.NoError(t, err)
	assert.Equal(t, "42", info.ID)
	assert.Equal(t, services.PaymentStatusApproved, info.Status)
	assert.Equal(t, "20260901-120000-abcd1234", info.ExternalReference)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, newTestGateway("https://api.example", true).ValidateConfig())

	unconfigured := services.NewMercadoPagoService(&services.MercadoPagoConfig{})
	assert.Error(t, unconfigured.ValidateConfig())
}

func TestMapPaymentStatus(t *testing.T) {
	assert.Equal(t, services.PaymentStatusApproved, services.MapPaymentStatus("approved"))
	assert.Equal(t, services.PaymentStatusApproved, services.MapPaymentStatus("authorized"))
	assert.Equal(t, services.PaymentStatusPending, services.MapPaymentStatus("in_process"))
	assert.Equal(t, services.PaymentStatusFailed, services.MapPaymentStatus("rejected"))
	assert.Equal(t, services.PaymentStatusFailed, services.MapPaymentStatus("charged_back"))
	assert.Equal(t, services.PaymentStatusUnknown, services.MapPaymentStatus("mystery"))
}
