package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// EncodeInvoiceDocument flattens an invoice into the document shape stored
// in a path-addressable document store. Monetary amounts are stored as
// strings so no precision is lost in transit.
func EncodeInvoiceDocument(inv *Invoice) map[string]any {
	items := make([]map[string]any, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, map[string]any{
			"description": item.Description,
			"quantity":    item.Quantity,
			"price":       item.Price.String(),
		})
	}
	return map[string]any{
		"direction":     string(inv.Direction),
		"invoiceNumber": inv.InvoiceNumber,
		"clientName":    inv.ClientName,
		"clientEmail":   inv.ClientEmail,
		"supplierName":  inv.SupplierName,
		"items":         items,
		"taxRate":       inv.TaxRate.String(),
		"dateIssued":    inv.DateIssued,
		"dueDate":       inv.DueDate,
		"status":        string(inv.Status),
		"paidAmount":    inv.PaidAmount.String(),
		"subTotal":      inv.SubTotal.String(),
		"taxAmount":     inv.TaxAmount.String(),
		"total":         inv.Total.String(),
		"currency":      inv.Currency,
		"fileURL":       inv.FileURL,
		"notes":         inv.Notes,
		"createdAt":     inv.CreatedAt,
		"updatedAt":     inv.UpdatedAt,
	}
}

// DecodeInvoiceDocument parses a raw document into a typed invoice.
// Documents missing the invoice number, a valid direction or either date
// are rejected instead of silently defaulted.
func DecodeInvoiceDocument(id string, doc map[string]any) (*Invoice, error) {
	inv := &Invoice{ID: id}

	inv.InvoiceNumber = docString(doc, "invoiceNumber")
	if inv.InvoiceNumber == "" {
		return nil, fmt.Errorf("document %s: missing invoiceNumber", id)
	}
	inv.Direction = Direction(docString(doc, "direction"))
	if !inv.Direction.Valid() {
		return nil, fmt.Errorf("document %s: invalid direction %q", id, docString(doc, "direction"))
	}
	var ok bool
	if inv.DateIssued, ok = docTime(doc, "dateIssued"); !ok {
		return nil, fmt.Errorf("document %s: missing dateIssued", id)
	}
	if inv.DueDate, ok = docTime(doc, "dueDate"); !ok {
		return nil, fmt.Errorf("document %s: missing dueDate", id)
	}

	inv.ClientName = docString(doc, "clientName")
	inv.ClientEmail = docString(doc, "clientEmail")
	inv.SupplierName = docString(doc, "supplierName")
	inv.Status = InvoiceStatus(docString(doc, "status"))
	if inv.Status == "" {
		inv.Status = InvoiceStatusUnpaid
	}
	inv.Currency = docString(doc, "currency")
	inv.FileURL = docString(doc, "fileURL")
	inv.Notes = docString(doc, "notes")
	inv.TaxRate = docDecimal(doc, "taxRate")
	inv.PaidAmount = docDecimal(doc, "paidAmount")
	inv.SubTotal = docDecimal(doc, "subTotal")
	inv.TaxAmount = docDecimal(doc, "taxAmount")
	inv.Total = docDecimal(doc, "total")
	inv.CreatedAt, _ = docTime(doc, "createdAt")
	inv.UpdatedAt, _ = docTime(doc, "updatedAt")

	rawItems, _ := doc["items"].([]any)
	for i, raw := range rawItems {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("document %s: item %d is not a map", id, i)
		}
		inv.Items = append(inv.Items, LineItem{
			Position:    i + 1,
			Description: docString(m, "description"),
			Quantity:    int(docInt(m, "quantity")),
			Price:       docDecimal(m, "price"),
		})
	}
	return inv, nil
}

func docString(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}

func docTime(doc map[string]any, key string) (time.Time, bool) {
	t, ok := doc[key].(time.Time)
	if !ok || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

func docInt(doc map[string]any, key string) int64 {
	switch v := doc[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}

func docDecimal(doc map[string]any, key string) decimal.Decimal {
	switch v := doc[key].(type) {
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	case int64:
		return decimal.NewFromInt(v)
	}
	return decimal.Zero
}
