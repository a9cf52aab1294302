// Package export renders invoices into documents a counterparty can
// receive, as plain PDF or as EN 16931 e-invoice XML.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/invoicehub/engine/model"
)

// ExportError is returned when an invoice cannot be rendered. When the
// invoice failed validation, Fields names the offending fields.
type ExportError struct {
	Fields model.FieldErrors
	Err    error
}

func (e *ExportError) Error() string {
	if e.Fields != nil {
		return fmt.Sprintf("invoice is not ready for export: %v", e.Fields)
	}
	return fmt.Sprintf("cannot export invoice: %v", e.Err)
}

func (e *ExportError) Unwrap() error {
	if e.Fields != nil {
		return e.Fields
	}
	return e.Err
}

// Filename is the canonical file name for an exported invoice.
func Filename(inv model.Invoice) string {
	return fmt.Sprintf("Invoice_%s.pdf", inv.InvoiceNumber)
}

const (
	pageMarginMM   = 15.0
	lineHeightMM   = 8.0
	tableBottomMM  = 270.0
	descColWidthMM = 90.0
	numColWidthMM  = 30.0
)

// RenderPDF renders a complete invoice document. The invoice is validated
// and recomputed first; an invalid invoice yields an ExportError carrying
// the field errors and no output at all.
func RenderPDF(inv model.Invoice, today time.Time) ([]byte, error) {
	model.EnsureDateIssued(&inv, today)
	if fe := model.VerifyInvoice(&inv); fe != nil {
		return nil, &ExportError{Fields: fe}
	}
	inv = model.Recompute(inv, today)

	title, partyLabel := headings(inv.Direction)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMarginMM, pageMarginMM, pageMarginMM)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Invoice", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, title, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, inv.InvoiceNumber, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%s: %s", partyLabel, inv.Counterparty()), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date issued: %s", model.FormatDate(inv.DateIssued)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Due date: %s", model.FormatDate(inv.DueDate)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	drawTableHeader(pdf)
	for _, item := range inv.Items {
		// long invoices continue the table on a fresh page
		if pdf.GetY() > tableBottomMM-lineHeightMM {
			pdf.AddPage()
			drawTableHeader(pdf)
		}
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(descColWidthMM, lineHeightMM, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(numColWidthMM, lineHeightMM, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(numColWidthMM, lineHeightMM, item.Price.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(numColWidthMM, lineHeightMM, item.Total().StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subtotal: %s", inv.SubTotal.StringFixed(2)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Tax (%s%%): %s", inv.TaxRate.String(), inv.TaxAmount.StringFixed(2)), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total: %s", inv.Total.StringFixed(2)), "", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(0, 6, "Thank you for your business!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, &ExportError{Err: err}
	}
	return buf.Bytes(), nil
}

func headings(d model.Direction) (title string, partyLabel string) {
	if d == model.DirectionIncoming {
		return "Client Invoice", "Client"
	}
	return "Supplier Invoice", "Supplier"
}

func drawTableHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(descColWidthMM, lineHeightMM, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(numColWidthMM, lineHeightMM, "Quantity", "1", 0, "R", false, 0, "")
	pdf.CellFormat(numColWidthMM, lineHeightMM, "Price", "1", 0, "R", false, 0, "")
	pdf.CellFormat(numColWidthMM, lineHeightMM, "Total", "1", 1, "R", false, 0, "")
}
