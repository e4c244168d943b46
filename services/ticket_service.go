package services

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/sabordacasa/delivery-app/models"
	"github.com/sabordacasa/delivery-app/utils"
)

// TicketService renders kitchen tickets as PDFs sized for an 80mm thermal
// printer roll. Implements TicketRenderer.
type TicketService struct {
	StoreName string
}

func NewTicketService(storeName string) *TicketService {
	return &TicketService{StoreName: storeName}
}

const ticketWidth = 80.0 // mm

// Render produces the ticket PDF for an order.
func (ts *TicketService) Render(order models.Order) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "mm",
		Size:    fpdf.SizeType{Wd: ticketWidth, Ht: 297},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.SetAutoPageBreak(true, 4)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	line := func(size float64, style, text string) {
		pdf.SetFont("Courier", style, size)
		pdf.MultiCell(ticketWidth-8, size*0.5, tr(text), "", "L", false)
	}
	rule := func() {
		line(8, "", "------------------------------")
	}

	pdf.SetFont("Courier", "B", 12)
	pdf.MultiCell(ticketWidth-8, 6, tr(ts.StoreName), "", "C", false)
	line(9, "", fmt.Sprintf("Pedido %s", order.Token))
	line(8, "", order.CreatedAt.Format("02/01/2006 15:04"))
	rule()

	line(9, "B", order.CustomerName)
	if order.CustomerPhone != "" {
		line(8, "", order.CustomerPhone)
	}
	rule()

	for _, item := range order.Items {
		line(9, "B", fmt.Sprintf("%dx %s", item.Quantity, item.Name))
		for _, opt := range item.Options {
			line(8, "", fmt.Sprintf("  + %s", opt.Name))
		}
	}
	rule()

	if order.DeliveryMethod == models.DeliveryMethodDelivery {
		addr := fmt.Sprintf("%s, %s", order.Street, order.Number)
		if order.Complement != "" {
			addr += " (" + order.Complement + ")"
		}
		line(8, "B", "ENTREGA")
		line(8, "", addr)
		line(8, "", order.Neighborhood)
	} else {
		line(8, "B", "RETIRADA NO BALCAO")
	}
	if order.Observations != "" {
		rule()
		line(8, "B", "OBS:")
		line(8, "", order.Observations)
	}
	rule()

	line(8, "", fmt.Sprintf("Subtotal:  %s", utils.FormatCurrencyBRL(order.Subtotal)))
	if order.DeliveryMethod == models.DeliveryMethodDelivery {
		line(8, "", fmt.Sprintf("Entrega:   %s", utils.FormatCurrencyBRL(order.DeliveryFee)))
	}
	line(10, "B", fmt.Sprintf("TOTAL:     %s", utils.FormatCurrencyBRL(order.Total)))
	line(8, "", fmt.Sprintf("Pagamento: %s", paymentLabel(order.PaymentMethod)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error generating ticket pdf: %v", err)
	}
	return buf.Bytes(), nil
}
