package model

import (
	"strings"
	"time"
)

// ListAnalytics are aggregate counts over an invoice list. They are
// ephemeral: recomputed after every mutation, never persisted.
type ListAnalytics struct {
	TotalInvoices int
	UnpaidCount   int
	OverdueCount  int
	PaidCount     int
	PaidPercent   float64
	UnpaidPercent float64
}

// ComputeAnalytics folds the current list into aggregate counts. Status is
// re-derived against "today" so an invoice whose due date passed since the
// last save still counts as overdue.
func ComputeAnalytics(invoices []Invoice, today time.Time) ListAnalytics {
	a := ListAnalytics{TotalInvoices: len(invoices)}
	for _, inv := range invoices {
		switch DeriveStatus(inv, today) {
		case InvoiceStatusPaid:
			a.PaidCount++
		case InvoiceStatusOverdue:
			a.OverdueCount++
		default:
			a.UnpaidCount++
		}
	}
	if a.TotalInvoices > 0 {
		a.PaidPercent = float64(a.PaidCount) / float64(a.TotalInvoices) * 100
		a.UnpaidPercent = 100 - a.PaidPercent
	}
	return a
}

// FilterInvoices returns the invoices matching a free-text search over
// counterparty name, invoice number and status. An empty term matches
// everything.
func FilterInvoices(invoices []Invoice, term string) []Invoice {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		out := make([]Invoice, len(invoices))
		copy(out, invoices)
		return out
	}
	out := make([]Invoice, 0, len(invoices))
	for _, inv := range invoices {
		if strings.Contains(strings.ToLower(inv.Counterparty()), term) ||
			strings.Contains(strings.ToLower(inv.InvoiceNumber), term) ||
			strings.Contains(strings.ToLower(string(inv.Status)), term) {
			out = append(out, inv)
		}
	}
	return out
}
