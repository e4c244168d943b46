package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/sabordacasa/delivery-app/models"
)

// MercadoPagoConfig holds Mercado Pago configuration.
type MercadoPagoConfig struct {
	AccessToken  string
	IsProduction bool
	BaseURL      string
	SuccessURL   string
	FailureURL   string
	WebhookURL   string
}

// MercadoPagoService handles Mercado Pago API interactions. Online checkout
// uses the hosted Checkout Pro flow: we create a payment preference and send
// the customer to its init point.
type MercadoPagoService struct {
	config     *MercadoPagoConfig
	httpClient *http.Client
}

var (
	mercadoPagoService *MercadoPagoService
	mercadoPagoOnce    sync.Once
)

// GetMercadoPagoService returns the singleton instance configured from
// environment variables.
func GetMercadoPagoService() *MercadoPagoService {
	mercadoPagoOnce.Do(func() {
		accessToken := os.Getenv("MP_ACCESS_TOKEN")
		isProduction := os.Getenv("MP_ENV") == "production"
		successURL := os.Getenv("MP_SUCCESS_URL")
		failureURL := os.Getenv("MP_FAILURE_URL")
		webhookURL := os.Getenv("MP_WEBHOOK_URL")

		mercadoPagoService = NewMercadoPagoService(&MercadoPagoConfig{
			AccessToken:  accessToken,
			IsProduction: isProduction,
			BaseURL:      "https://api.mercadopago.com",
			SuccessURL:   successURL,
			FailureURL:   failureURL,
			WebhookURL:   webhookURL,
		})
	})
	return mercadoPagoService
}

// NewMercadoPagoService creates a new instance of MercadoPagoService.
// Used directly by tests to point BaseURL at a stub server.
func NewMercadoPagoService(config *MercadoPagoConfig) *MercadoPagoService {
	return &MercadoPagoService{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ValidateConfig reports whether the gateway can actually be called. Checked
// once at startup; a missing token downgrades checkout to WhatsApp handoff
// instead of failing orders at payment time.
func (mp *MercadoPagoService) ValidateConfig() error {
	if mp.config.AccessToken == "" {
		return fmt.Errorf("MP_ACCESS_TOKEN is not set")
	}
	return nil
}

type preferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
	Message          string `json:"message"`
}

// CreatePreference creates a Checkout Pro preference for the order and
// returns the redirect the customer should follow. The order token doubles as
// the external reference so the webhook can find the order back.
func (mp *MercadoPagoService) CreatePreference(order models.Order) (*PaymentPreference, error) {
	url := fmt.Sprintf("%s/checkout/preferences", mp.config.BaseURL)

	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]interface{}{
			"title":       item.Name,
			"quantity":    item.Quantity,
			"unit_price":  item.UnitPrice,
			"currency_id": "BRL",
		})
	}
	if order.DeliveryFee > 0 {
		items = append(items, map[string]interface{}{
			"title":       "Taxa de entrega",
			"quantity":    1,
			"unit_price":  order.DeliveryFee,
			"currency_id": "BRL",
		})
	}

	payload := map[string]interface{}{
		"external_reference": order.Token,
		"items":              items,
		"payer": map[string]interface{}{
			"name": order.CustomerName,
			"phone": map[string]interface{}{
				"number": order.CustomerPhone,
			},
		},
		"back_urls": map[string]interface{}{
			"success": mp.config.SuccessURL,
			"failure": mp.config.FailureURL,
		},
		"notification_url": mp.config.WebhookURL,
	}
	if order.PaymentMethod == models.PaymentMethodPix {
		payload["payment_methods"] = map[string]interface{}{
			"default_payment_method_id": "pix",
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshaling request: %v", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mp.config.AccessToken)

	resp, err := mp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("Mercado Pago API error: %s", string(body))
	}

	var prefResp preferenceResponse
	if err := json.Unmarshal(body, &prefResp); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}

	pref := &PaymentPreference{
		ID:                 prefResp.ID,
		RedirectURL:        prefResp.InitPoint,
		SandboxRedirectURL: prefResp.SandboxInitPoint,
	}
	if !mp.config.IsProduction && prefResp.SandboxInitPoint != "" {
		pref.RedirectURL = prefResp.SandboxInitPoint
	}
	return pref, nil
}

// PaymentInfo is the subset of a Mercado Pago payment the webhook handler
// needs.
type PaymentInfo struct {
	ID                string
	Status            string
	ExternalReference string
}

// GetPayment fetches a payment by id, used to verify webhook notifications
// against the API instead of trusting the notification body.
func (mp *MercadoPagoService) GetPayment(paymentID string) (*PaymentInfo, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", mp.config.BaseURL, paymentID)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+mp.config.AccessToken)

	resp, err := mp.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Mercado Pago API error: %s", string(body))
	}

	var paymentResp struct {
		ID                json.Number `json:"id"`
		Status            string      `json:"status"`
		ExternalReference string      `json:"external_reference"`
	}
	if err := json.Unmarshal(body, &paymentResp); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}

	return &PaymentInfo{
		ID:                paymentResp.ID.String(),
		Status:            MapPaymentStatus(paymentResp.Status),
		ExternalReference: paymentResp.ExternalReference,
	}, nil
}

// Internal payment statuses.
const (
	PaymentStatusApproved = "approved"
	PaymentStatusPending  = "pending"
	PaymentStatusFailed   = "failed"
	PaymentStatusUnknown  = "unknown"
)

// MapPaymentStatus maps a Mercado Pago payment status to an internal one.
func MapPaymentStatus(status string) string {
	switch status {
	case "approved", "authorized":
		return PaymentStatusApproved
	case "pending", "in_process", "in_mediation":
		return PaymentStatusPending
	case "rejected", "cancelled", "refunded", "charged_back":
		return PaymentStatusFailed
	default:
		return PaymentStatusUnknown
	}
}
