package services

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

// BuildWhatsAppLink composes the wa.me deep link the storefront opens after a
// non-gateway checkout, with the full order summary prefilled as the message.
func BuildWhatsAppLink(settings models.StoreSettings, order models.Order) string {
	phone := utils.NormalizePhone(settings.Phone)
	text := buildOrderMessage(order)
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(text))
}

func buildOrderMessage(order models.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Pedido %s*\n", order.Token)
	fmt.Fprintf(&b, "Cliente: %s\n\n", order.CustomerName)

	for _, item := range order.Items {
		fmt.Fprintf(&b, "%dx %s - %s\n", item.Quantity, item.Name,
			utils.FormatCurrencyBRL(item.UnitPrice*float64(item.Quantity)))
		for _, opt := range item.Options {
			fmt.Fprintf(&b, "  + %s\n", opt.Name)
		}
	}

	b.WriteString("\n")
	if order.DeliveryMethod == models.DeliveryMethodDelivery {
		fmt.Fprintf(&b, "Entrega: %s, %s", order.Street, order.Number)
		if order.Complement != "" {
			fmt.Fprintf(&b, " (%s)", order.Complement)
		}
		fmt.Fprintf(&b, " - %s\n", order.Neighborhood)
		fmt.Fprintf(&b, "Taxa de entrega: %s\n", utils.FormatCurrencyBRL(order.DeliveryFee))
	} else {
		b.WriteString("Retirada no balcão\n")
	}

	fmt.Fprintf(&b, "Pagamento: %s\n", paymentLabel(order.PaymentMethod))
	if order.Observations != "" {
		fmt.Fprintf(&b, "Obs: %s\n", order.Observations)
	}
	fmt.Fprintf(&b, "\n*Total: %s*", utils.FormatCurrencyBRL(order.Total))

	return b.String()
}

func paymentLabel(method string) string {
	switch method {
	case models.PaymentMethodPix:
		return "Pix"
	case models.PaymentMethodCard:
		return "Cartão"
	case models.PaymentMethodCash:
		return "Dinheiro"
	}
	return method
}
