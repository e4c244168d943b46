package services_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/services"
)

func TestBuildWhatsAppLink(t *testing.T) {
	settings := models.StoreSettings{Phone: "+55 (11) 98765-4321"}
	order := models.Order{
		Token:          "20260901-120000-abcd1234",
		CustomerName:   "Maria",
		DeliveryMethod: models.DeliveryMethodDelivery,
		PaymentMethod:  models.PaymentMethodPix,
		Street:         "Rua das Flores",
		Number:         "123",
		Neighborhood:   "Centro",
		DeliveryFee:    7.00,
		Total:          63.00,
		Items: []models.OrderItem{
			{Name: "Executivo", UnitPrice: 28.00, Quantity: 2, Options: []models.OrderItemOption{
				{Name: "Picanha"},
			}},
		},
	}

	link := services.BuildWhatsAppLink(settings, order)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/5511987654321?text="), link)

	parsed, err := url.Parse(link)
	assert.NoError(t, err)
	text := parsed.Query().Get("text")

	assert.Contains(t, text, "Pedido 20260901-120000-abcd1234")
	assert.Contains(t, text, "2x Executivo - R$ 56,00")
	assert.Contains(t, text, "+ Picanha")
	assert.Contains(t, text, "Rua das Flores, 123 - Centro")
	assert.Contains(t, text, "Pagamento: Pix")
	assert.Contains(t, text, "Total: R$ 63,00")
}

func TestBuildWhatsAppLinkPickup(t *testing.T) {
	settings := models.StoreSettings{Phone: "11987654321"}
	order := models.Order{
		Token:          "t",
		CustomerName:   "João",
		DeliveryMethod: models.DeliveryMethodPickup,
		PaymentMethod:  models.PaymentMethodCash,
		Total:          25.00,
	}

	parsed, err := url.Parse(services.BuildWhatsAppLink(settings, order))
	assert.NoError(t, err)
	text := parsed.Query().Get("text")

	assert.Contains(t, text, "Retirada no balcão")
	assert.NotContains(t, text, "Taxa de entrega")
}
