package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction says on which side of the ledger an invoice sits.
type Direction string

const (
	// DirectionIncoming is an invoice issued to one of the tenant's clients.
	DirectionIncoming Direction = "Incoming"
	// DirectionOutgoing is an invoice the tenant received from a supplier.
	DirectionOutgoing Direction = "Outgoing"
)

func (d Direction) Valid() bool {
	return d == DirectionIncoming || d == DirectionOutgoing
}

type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "Unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "Partially Paid"
	InvoiceStatusPaid          InvoiceStatus = "Paid"
	InvoiceStatusOverdue       InvoiceStatus = "Overdue"
)

// Invoice is the canonical invoice record. SubTotal, TaxAmount, Total and
// Status are derived fields; callers must run Recompute after changing
// Items, TaxRate, PaidAmount or DueDate and never set them directly.
type Invoice struct {
	ID            string `gorm:"primarykey"`
	TenantID      string `gorm:"index;index:idx_tenant_number,unique"`
	Direction     Direction
	InvoiceNumber string `gorm:"index:idx_tenant_number,unique"`
	ClientName    string
	ClientEmail   string
	SupplierName  string
	Items         []LineItem `gorm:"foreignKey:InvoiceID"`
	TaxRate       decimal.Decimal
	DateIssued    time.Time
	DueDate       time.Time
	Status        InvoiceStatus `gorm:"type:text;not null;default:Unpaid"`
	PaidAmount    decimal.Decimal
	SubTotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	Currency      string
	FileURL       string
	Notes         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LineItem is one line in an invoice. The line total is derived, never stored.
type LineItem struct {
	ID          uint   `gorm:"primarykey"`
	InvoiceID   string `gorm:"index"`
	TenantID    string `gorm:"index"`
	Position    int
	Description string
	Quantity    int
	Price       decimal.Decimal `gorm:"type:decimal(20,8)"`
}

func (li LineItem) Total() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

var hundred = decimal.NewFromInt(100)

// Counterparty returns the name of the party on the other side of the
// invoice, depending on the direction.
func (inv *Invoice) Counterparty() string {
	if inv.Direction == DirectionOutgoing {
		return inv.SupplierName
	}
	return inv.ClientName
}

// Recompute derives SubTotal, TaxAmount, Total and Status from the items,
// tax rate, paid amount and due date. It is pure and idempotent; all other
// fields pass through untouched. Status depends on the calendar, so the
// caller supplies "today" instead of the function reaching for a clock.
func Recompute(inv Invoice, today time.Time) Invoice {
	subTotal := decimal.Zero
	for _, item := range inv.Items {
		subTotal = subTotal.Add(item.Total())
	}
	inv.SubTotal = subTotal
	inv.TaxAmount = subTotal.Mul(inv.TaxRate).Div(hundred)
	inv.Total = inv.SubTotal.Add(inv.TaxAmount)
	inv.Status = DeriveStatus(inv, today)
	return inv
}

// DeriveStatus derives the payment status. Overdue wins whenever the due
// date has passed and the invoice is not fully paid, even if a partial
// payment was made. This ordering is a deliberate interpretation: partial
// payment information is still available through PaidAmount.
func DeriveStatus(inv Invoice, today time.Time) InvoiceStatus {
	day := truncateDay(today)
	switch {
	case !inv.DueDate.IsZero() && truncateDay(inv.DueDate).Before(day) && inv.PaidAmount.LessThan(inv.Total):
		return InvoiceStatusOverdue
	case inv.Total.IsPositive() && inv.PaidAmount.GreaterThanOrEqual(inv.Total):
		return InvoiceStatusPaid
	case inv.PaidAmount.IsPositive() && inv.PaidAmount.LessThan(inv.Total):
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusUnpaid
	}
}

// EnsureDateIssued fills in the issue date for outgoing invoices that have
// none. Incoming invoices keep whatever the user entered; validation will
// complain if the date is missing.
func EnsureDateIssued(inv *Invoice, today time.Time) {
	if inv.Direction == DirectionOutgoing && inv.DateIssued.IsZero() {
		inv.DateIssued = truncateDay(today)
	}
}

// FormatDate renders a calendar date in the fixed DD-MM-YY form used on
// invoice documents.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02-01-06")
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
