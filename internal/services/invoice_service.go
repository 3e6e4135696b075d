// internal/services/invoice_service.go
package services

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/shopfront/ecommerce-backend/internal/models"
)

// InvoiceService lays out an order as a one-page PDF invoice.
type InvoiceService struct {
	currency string
}

func NewInvoiceService(currency string) *InvoiceService {
	if currency == "" {
		currency = "Rs."
	}
	return &InvoiceService{currency: currency}
}

func (s *InvoiceService) money(amount float64) string {
	return fmt.Sprintf("%s %.2f", s.currency, amount)
}

func (s *InvoiceService) Render(order *models.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "", 11)
	line := func(text string) {
		pdf.CellFormat(0, 6, tr(text), "", 1, "L", false, 0, "")
	}
	line("Order ID: #" + order.OrderNumber)
	line("Date: " + order.CreatedAt.Format("02 Jan 2006 15:04"))
	line("Payment Method: " + string(order.PaymentMethod))
	line("Status: " + string(order.Status))
	if order.User != nil {
		line(fmt.Sprintf("Customer: %s <%s>", order.User.Name, order.User.Email))
	}
	pdf.Ln(4)

	// Shipping
	ship := order.ShippingAddress
	pdf.SetFont("Helvetica", "BU", 13)
	line("Shipping Info:")
	pdf.SetFont("Helvetica", "", 11)
	line("Name: " + ship.FullName)
	line("Email: " + ship.Email)
	line("Phone: " + ship.Mobile)
	line(fmt.Sprintf("Address: %s, %s, %s - %s", ship.AddressLine, ship.City, ship.State, ship.Pincode))
	landmark := ship.Landmark
	if landmark == "" {
		landmark = "-"
	}
	line("Landmark: " + landmark)
	line("Address Type: " + string(ship.AddressType))
	pdf.Ln(4)

	// Items
	pdf.SetFont("Helvetica", "BU", 13)
	line("Order Items:")
	pdf.Ln(2)

	widths := []float64{90, 20, 32, 32}
	pdf.SetFont("Helvetica", "B", 11)
	for i, heading := range []string{"Product", "Qty", "Price", "Total"} {
		pdf.CellFormat(widths[i], 7, heading, "B", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	for _, item := range order.Items {
		pdf.CellFormat(widths[0], 7, tr(item.Name), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, fmt.Sprintf("%d", item.Quantity), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 7, s.money(item.Price), "", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 7, s.money(item.Price*float64(item.Quantity)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Total
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, "Total Price: "+s.money(order.TotalPrice), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice: %w", err)
	}
	return buf.Bytes(), nil
}
