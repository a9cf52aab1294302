// Package fixtures provides test data builders shared by the package
// tests.
package fixtures

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicehub/engine/model"
)

// DefaultTenantID is the tenant all fixtures belong to unless overridden.
const DefaultTenantID = "tenant-test"

// Today is the fixed reference date tests derive statuses against.
var Today = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

// Item builds a line item.
func Item(description string, quantity int, price float64) model.LineItem {
	return model.LineItem{
		Description: description,
		Quantity:    quantity,
		Price:       decimal.NewFromFloat(price),
	}
}

// SampleItems returns three items with a subtotal of 1660.
func SampleItems() []model.LineItem {
	return []model.LineItem{
		Item("Consulting", 8, 120.00),
		Item("Support", 2, 100.00),
		Item("Licence", 1, 500.00),
	}
}

// InvoiceOption mutates the invoice a fixture builds.
type InvoiceOption func(*model.Invoice)

func WithDirection(d model.Direction) InvoiceOption {
	return func(inv *model.Invoice) { inv.Direction = d }
}

func WithInvoiceNumber(number string) InvoiceOption {
	return func(inv *model.Invoice) { inv.InvoiceNumber = number }
}

func WithClientName(name string) InvoiceOption {
	return func(inv *model.Invoice) { inv.ClientName = name }
}

func WithClientEmail(email string) InvoiceOption {
	return func(inv *model.Invoice) { inv.ClientEmail = email }
}

func WithSupplierName(name string) InvoiceOption {
	return func(inv *model.Invoice) { inv.SupplierName = name }
}

func WithItems(items ...model.LineItem) InvoiceOption {
	return func(inv *model.Invoice) { inv.Items = items }
}

func WithTaxRate(rate float64) InvoiceOption {
	return func(inv *model.Invoice) { inv.TaxRate = decimal.NewFromFloat(rate) }
}

func WithPaidAmount(amount float64) InvoiceOption {
	return func(inv *model.Invoice) { inv.PaidAmount = decimal.NewFromFloat(amount) }
}

func WithDateIssued(t time.Time) InvoiceOption {
	return func(inv *model.Invoice) { inv.DateIssued = t }
}

func WithDueDate(t time.Time) InvoiceOption {
	return func(inv *model.Invoice) { inv.DueDate = t }
}

func WithID(id string) InvoiceOption {
	return func(inv *model.Invoice) { inv.ID = id }
}

// Invoice builds a valid incoming invoice due two weeks after Today,
// recomputed so totals and status are consistent.
func Invoice(opts ...InvoiceOption) model.Invoice {
	inv := model.Invoice{
		Direction:     model.DirectionIncoming,
		InvoiceNumber: "IN-TEST0001",
		ClientName:    "ACME GmbH",
		ClientEmail:   "billing@acme.example",
		Items:         SampleItems(),
		TaxRate:       decimal.NewFromInt(19),
		DateIssued:    Today,
		DueDate:       Today.AddDate(0, 0, 14),
		Currency:      "EUR",
	}
	for _, opt := range opts {
		opt(&inv)
	}
	return model.Recompute(inv, Today)
}

// NewTestStore opens a fresh in-memory database.
func NewTestStore(t *testing.T) *model.Store {
	t.Helper()
	cfg := &model.Config{
		Mode:          "test",
		DefaultTenant: DefaultTenantID,
		Servers: map[string]model.Server{
			"test": {Database: "sqlite3", DBName: ":memory:"},
		},
	}
	store, err := model.InitDatabase(cfg)
	if err != nil {
		t.Fatalf("InitDatabase failed: %v", err)
	}
	return store
}
