package model

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field path ("dueDate", "items[2].quantity") to a
// human-readable message. The form layer shows all entries at once instead
// of stopping at the first problem.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteString("invalid invoice:")
	for _, k := range keys {
		fmt.Fprintf(&sb, " %s: %s;", k, fe[k])
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// VerifyInvoice checks an invoice before it is saved or rendered. It
// returns nil when the invoice is valid, otherwise a map with one message
// per offending field.
func VerifyInvoice(inv *Invoice) FieldErrors {
	fe := FieldErrors{}

	if !inv.Direction.Valid() {
		fe["direction"] = "Direction must be Incoming or Outgoing."
	}
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		fe["invoiceNumber"] = "An invoice number is required."
	}
	switch inv.Direction {
	case DirectionOutgoing:
		if strings.TrimSpace(inv.SupplierName) == "" {
			fe["supplierName"] = "A supplier name is required for a received invoice."
		}
	default:
		if strings.TrimSpace(inv.ClientName) == "" {
			fe["clientName"] = "A client name is required for a client invoice."
		}
	}
	if inv.DateIssued.IsZero() {
		fe["dateIssued"] = "An issue date is required."
	}
	if inv.DueDate.IsZero() {
		fe["dueDate"] = "A due date is required."
	} else if !inv.DateIssued.IsZero() && truncateDay(inv.DueDate).Before(truncateDay(inv.DateIssued)) {
		fe["dueDate"] = "The due date must not precede the issue date."
	}
	if inv.TaxRate.IsNegative() || inv.TaxRate.GreaterThan(hundred) {
		fe["taxRate"] = "The tax rate must be between 0 and 100 percent."
	}
	if len(inv.Items) == 0 {
		fe["items"] = "An invoice needs at least one line item."
	}
	for i, item := range inv.Items {
		if strings.TrimSpace(item.Description) == "" {
			fe[fmt.Sprintf("items[%d].description", i)] = "Each item needs a description."
		}
		if item.Quantity < 1 {
			fe[fmt.Sprintf("items[%d].quantity", i)] = "The quantity must be a positive whole number."
		}
		if item.Price.IsNegative() {
			fe[fmt.Sprintf("items[%d].price", i)] = "The unit price must not be negative."
		}
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}
