package receipt

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/spacbotltd/spacbot-api/internal/types"
)

// Business identity printed in the receipt header and footer.
const (
	businessName    = "iStar Smart Kids & Spacbot Ltd"
	businessTagline = "Robotics - Coding - Space Technology"
	footerNote      = "Thank you for choosing iStar Smart Kids & Spacbot Ltd!"
)

// Column widths in millimetres: program, qty, unit price, line total.
var colWidths = [4]float64{60, 20, 35, 35}

// Details carries everything Render needs. Items usually come from a
// Cart; AmountPaid is whatever the parent actually handed over.
type Details struct {
	StudentName   string
	PaymentMethod string
	Items         []types.ReceiptLineItem
	AmountPaid    float64
}

// Render produces the receipt as PDF bytes. The clock is a parameter so
// the printed date and receipt ID are testable; production passes
// time.Now in the business timezone.
//
// Layout: header block (business identity), key-value metadata lines,
// one bordered table of items plus bold summary rows, footer paragraph.
// An empty item list renders a valid receipt with zero totals.
func Render(d Details, now time.Time) ([]byte, error) {
	grandTotal, balance, status := Summarize(d.Items, d.AmountPaid)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header block.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, businessName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, businessTagline, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Metadata lines.
	meta := []struct{ label, value string }{
		{"Student", d.StudentName},
		{"Payment Method", d.PaymentMethod},
		{"Date", now.Format("02 January 2006")},
		{"Receipt ID", ID(now)},
	}
	for _, m := range meta {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(35, 6, m.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, m.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Table header.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(211, 211, 211)
	headers := [4]string{"Program", "Qty", "Price (GHS)", "Total (GHS)"}
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	// Item rows.
	pdf.SetFont("Helvetica", "", 11)
	for _, item := range d.Items {
		pdf.CellFormat(colWidths[0], 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, fmt.Sprintf("%d", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, fmt.Sprintf("%.2f", item.Price), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, fmt.Sprintf("%.2f", item.Total), "1", 1, "C", false, 0, "")
	}

	// Summary rows, bold, in the rightmost two columns.
	pdf.SetFont("Helvetica", "B", 11)
	summary := []struct{ label, value string }{
		{"Grand Total", fmt.Sprintf("GHS %.2f", grandTotal)},
		{"Amount Paid", fmt.Sprintf("GHS %.2f", d.AmountPaid)},
		{"Balance", fmt.Sprintf("GHS %.2f", balance)},
		{"Status", status},
	}
	for _, row := range summary {
		pdf.CellFormat(colWidths[0], 8, "", "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, "", "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, row.label, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, row.value, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(8)

	// Footer.
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 6, footerNote, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("receipt.Render: %w", err)
	}
	return buf.Bytes(), nil
}
