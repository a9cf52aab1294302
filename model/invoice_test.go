package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicehub/engine/fixtures"
	"github.com/invoicehub/engine/model"
)

func TestInvoice_Recompute(t *testing.T) {
	tests := []struct {
		name         string
		items        []model.LineItem
		taxRate      string
		wantSubTotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "no items",
			items:        nil,
			taxRate:      "19",
			wantSubTotal: "0",
			wantTax:      "0",
			wantTotal:    "0",
		},
		{
			name:         "single item 10% tax",
			items:        []model.LineItem{fixtures.Item("Widget", 2, 10.00)},
			taxRate:      "10",
			wantSubTotal: "20",
			wantTax:      "2",
			wantTotal:    "22",
		},
		{
			name:         "multiple items 19% tax",
			items:        fixtures.SampleItems(),
			taxRate:      "19",
			wantSubTotal: "1660", // 8*120 + 2*100 + 1*500
			wantTax:      "315.4",
			wantTotal:    "1975.4",
		},
		{
			name:         "zero tax",
			items:        []model.LineItem{fixtures.Item("Service", 1, 250.00)},
			taxRate:      "0",
			wantSubTotal: "250",
			wantTax:      "0",
			wantTotal:    "250",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := model.Invoice{
				Items:   tt.items,
				TaxRate: decimal.RequireFromString(tt.taxRate),
			}
			got := model.Recompute(inv, fixtures.Today)

			if !got.SubTotal.Equal(decimal.RequireFromString(tt.wantSubTotal)) {
				t.Errorf("SubTotal = %s, want %s", got.SubTotal, tt.wantSubTotal)
			}
			if !got.TaxAmount.Equal(decimal.RequireFromString(tt.wantTax)) {
				t.Errorf("TaxAmount = %s, want %s", got.TaxAmount, tt.wantTax)
			}
			if !got.Total.Equal(decimal.RequireFromString(tt.wantTotal)) {
				t.Errorf("Total = %s, want %s", got.Total, tt.wantTotal)
			}
		})
	}
}

func TestInvoice_RecomputeIdempotent(t *testing.T) {
	inv := fixtures.Invoice()
	once := model.Recompute(inv, fixtures.Today)
	twice := model.Recompute(once, fixtures.Today)

	if !once.Total.Equal(twice.Total) || once.Status != twice.Status {
		t.Errorf("second Recompute changed the result: %s/%s vs %s/%s",
			once.Total, once.Status, twice.Total, twice.Status)
	}
}

func TestInvoice_RecomputeLeavesOtherFieldsAlone(t *testing.T) {
	inv := fixtures.Invoice(fixtures.WithInvoiceNumber("IN-KEEPME01"))
	inv.Notes = "hand-written note"
	got := model.Recompute(inv, fixtures.Today)

	if got.InvoiceNumber != "IN-KEEPME01" {
		t.Errorf("InvoiceNumber = %q, want %q", got.InvoiceNumber, "IN-KEEPME01")
	}
	if got.Notes != "hand-written note" {
		t.Errorf("Notes = %q, want the original note", got.Notes)
	}
}

func TestInvoice_DeriveStatus(t *testing.T) {
	total100 := []model.LineItem{fixtures.Item("Service", 1, 100.00)}

	tests := []struct {
		name string
		inv  model.Invoice
		want model.InvoiceStatus
	}{
		{
			name: "nothing paid, not due",
			inv:  fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0)),
			want: model.InvoiceStatusUnpaid,
		},
		{
			name: "partially paid, not due",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithPaidAmount(40)),
			want: model.InvoiceStatusPartiallyPaid,
		},
		{
			name: "fully paid",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithPaidAmount(100)),
			want: model.InvoiceStatusPaid,
		},
		{
			name: "overpaid counts as paid",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithPaidAmount(120)),
			want: model.InvoiceStatusPaid,
		},
		{
			name: "past due, nothing paid",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithDueDate(fixtures.Today.AddDate(0, 0, -1))),
			want: model.InvoiceStatusOverdue,
		},
		{
			name: "past due beats partial payment",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithPaidAmount(40),
				fixtures.WithDueDate(fixtures.Today.AddDate(0, 0, -1))),
			want: model.InvoiceStatusOverdue,
		},
		{
			name: "past due but fully paid stays paid",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithPaidAmount(100),
				fixtures.WithDueDate(fixtures.Today.AddDate(0, 0, -1))),
			want: model.InvoiceStatusPaid,
		},
		{
			name: "due today is not overdue",
			inv: fixtures.Invoice(fixtures.WithItems(total100...), fixtures.WithTaxRate(0),
				fixtures.WithDueDate(fixtures.Today)),
			want: model.InvoiceStatusUnpaid,
		},
		{
			name: "zero total is unpaid, not paid",
			inv:  fixtures.Invoice(fixtures.WithItems(fixtures.Item("Free", 1, 0)), fixtures.WithTaxRate(0)),
			want: model.InvoiceStatusUnpaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := model.DeriveStatus(tt.inv, fixtures.Today); got != tt.want {
				t.Errorf("DeriveStatus = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInvoice_EnsureDateIssued(t *testing.T) {
	outgoing := model.Invoice{Direction: model.DirectionOutgoing}
	model.EnsureDateIssued(&outgoing, fixtures.Today)
	if outgoing.DateIssued.IsZero() {
		t.Error("outgoing invoice should get an issue date")
	}

	incoming := model.Invoice{Direction: model.DirectionIncoming}
	model.EnsureDateIssued(&incoming, fixtures.Today)
	if !incoming.DateIssued.IsZero() {
		t.Error("incoming invoice must not get an issue date filled in")
	}

	set := model.Invoice{Direction: model.DirectionOutgoing, DateIssued: fixtures.Today.AddDate(0, -1, 0)}
	model.EnsureDateIssued(&set, fixtures.Today)
	if !set.DateIssued.Equal(fixtures.Today.AddDate(0, -1, 0)) {
		t.Error("an existing issue date must not be overwritten")
	}
}

func TestInvoice_Counterparty(t *testing.T) {
	in := fixtures.Invoice(fixtures.WithClientName("ACME GmbH"))
	if got := in.Counterparty(); got != "ACME GmbH" {
		t.Errorf("Counterparty = %q, want %q", got, "ACME GmbH")
	}
	out := fixtures.Invoice(
		fixtures.WithDirection(model.DirectionOutgoing),
		fixtures.WithSupplierName("Hosting Inc"))
	if got := out.Counterparty(); got != "Hosting Inc" {
		t.Errorf("Counterparty = %q, want %q", got, "Hosting Inc")
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 7, 15, 4, 5, 0, time.UTC)
	if got := model.FormatDate(d); got != "07-03-25" {
		t.Errorf("FormatDate = %q, want %q", got, "07-03-25")
	}
	if got := model.FormatDate(time.Time{}); got != "" {
		t.Errorf("FormatDate(zero) = %q, want empty", got)
	}
}
