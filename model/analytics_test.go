package model_test

import (
	"testing"

	"github.com/invoicehub/engine/fixtures"
	"github.com/invoicehub/engine/model"
)

func sampleList() []model.Invoice {
	return []model.Invoice{
		fixtures.Invoice(fixtures.WithInvoiceNumber("IN-AAAA0001"), fixtures.WithClientName("ACME GmbH")),
		fixtures.Invoice(fixtures.WithInvoiceNumber("IN-BBBB0002"), fixtures.WithClientName("Beta Ltd"),
			fixtures.WithPaidAmount(999999)),
		fixtures.Invoice(fixtures.WithInvoiceNumber("IN-CCCC0003"), fixtures.WithClientName("Gamma AG"),
			fixtures.WithDueDate(fixtures.Today.AddDate(0, 0, -3))),
		fixtures.Invoice(fixtures.WithInvoiceNumber("OUT-DDDD0004"),
			fixtures.WithDirection(model.DirectionOutgoing),
			fixtures.WithSupplierName("Hosting Inc"),
			fixtures.WithPaidAmount(500)),
	}
}

func TestComputeAnalytics(t *testing.T) {
	a := model.ComputeAnalytics(sampleList(), fixtures.Today)

	if a.TotalInvoices != 4 {
		t.Errorf("TotalInvoices = %d, want 4", a.TotalInvoices)
	}
	if a.PaidCount != 1 {
		t.Errorf("PaidCount = %d, want 1", a.PaidCount)
	}
	if a.OverdueCount != 1 {
		t.Errorf("OverdueCount = %d, want 1", a.OverdueCount)
	}
	// the partially paid invoice counts towards unpaid
	if a.UnpaidCount != 2 {
		t.Errorf("UnpaidCount = %d, want 2", a.UnpaidCount)
	}
	if a.PaidPercent != 25 {
		t.Errorf("PaidPercent = %v, want 25", a.PaidPercent)
	}
	if a.UnpaidPercent != 75 {
		t.Errorf("UnpaidPercent = %v, want 75", a.UnpaidPercent)
	}
}

func TestComputeAnalytics_Empty(t *testing.T) {
	a := model.ComputeAnalytics(nil, fixtures.Today)
	if a.TotalInvoices != 0 || a.PaidPercent != 0 || a.UnpaidPercent != 0 {
		t.Errorf("empty list analytics = %+v, want all zero", a)
	}
}

func TestComputeAnalytics_RederivesStatus(t *testing.T) {
	// stored status says unpaid, but the due date has passed since
	inv := fixtures.Invoice()
	inv.Status = model.InvoiceStatusUnpaid
	inv.DueDate = fixtures.Today.AddDate(0, 0, -1)

	a := model.ComputeAnalytics([]model.Invoice{inv}, fixtures.Today)
	if a.OverdueCount != 1 {
		t.Errorf("OverdueCount = %d, want 1", a.OverdueCount)
	}
}

func TestFilterInvoices(t *testing.T) {
	list := sampleList()

	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "empty term matches all", term: "", want: 4},
		{name: "counterparty match", term: "acme", want: 1},
		{name: "number match", term: "bbbb", want: 1},
		{name: "status match", term: "overdue", want: 1},
		{name: "case insensitive", term: "HOSTING", want: 1},
		{name: "no match", term: "zzz", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := model.FilterInvoices(list, tt.term)
			if len(got) != tt.want {
				t.Errorf("matched %d invoices, want %d", len(got), tt.want)
			}
		})
	}
}
