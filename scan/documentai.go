// Package scan turns scanned invoice PDFs into prefilled invoice records
// using Google Document AI. The extraction is a draft for review, never a
// finished invoice.
package scan

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/shopspring/decimal"
	"google.golang.org/api/option"

	"github.com/invoicehub/engine/model"
)

// MaxDocumentSize is the largest PDF accepted for scanning (20MB, the
// Document AI inline request limit).
const MaxDocumentSize = 20 * 1024 * 1024

// Config locates the Document AI invoice processor.
type Config struct {
	ProjectID   string
	Location    string
	ProcessorID string
	Timeout     time.Duration
}

// Extractor sends PDFs to Document AI and maps the response onto invoice
// records.
type Extractor struct {
	client *documentai.DocumentProcessorClient
	config Config
	log    *slog.Logger
}

// NewExtractor builds an extractor. Locations other than "us" use the
// regional endpoint.
func NewExtractor(ctx context.Context, cfg Config, log *slog.Logger, opts ...option.ClientOption) (*Extractor, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("document scan: project id is required")
	}
	if cfg.Location == "" {
		cfg.Location = "us"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("document scan: cannot create client: %w", err)
	}
	return &Extractor{client: client, config: cfg, log: log}, nil
}

func (e *Extractor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}

func (e *Extractor) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		e.config.ProjectID, e.config.Location, e.config.ProcessorID)
}

// ExtractInvoice scans a PDF and returns a draft invoice. Scanned invoices
// are always incoming; the caller reviews and saves the draft through the
// normal form flow.
func (e *Extractor) ExtractInvoice(ctx context.Context, pdf []byte) (*model.Invoice, error) {
	if len(pdf) > MaxDocumentSize {
		return nil, fmt.Errorf("document scan: file too large (%d bytes, limit %d)", len(pdf), MaxDocumentSize)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		return nil, fmt.Errorf("document scan: not a PDF file")
	}

	processCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: e.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdf,
				MimeType: "application/pdf",
			},
		},
	}
	resp, err := e.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, fmt.Errorf("document scan: %w", err)
	}
	if resp.Document == nil {
		return nil, fmt.Errorf("document scan: empty response")
	}
	return e.mapDocument(resp.Document), nil
}

func (e *Extractor) mapDocument(doc *documentaipb.Document) *model.Invoice {
	inv := &model.Invoice{
		Direction: model.DirectionIncoming,
		Status:    model.InvoiceStatusUnpaid,
	}
	for _, entity := range doc.Entities {
		value := strings.TrimSpace(entity.MentionText)
		switch entity.Type {
		case "invoice_id", "invoice_number":
			inv.InvoiceNumber = value
		case "supplier_name", "vendor_name":
			inv.SupplierName = value
		case "buyer_name", "customer_name":
			inv.ClientName = value
		case "invoice_date":
			if date, ok := entityDate(entity); ok {
				inv.DateIssued = date
			}
		case "due_date":
			if date, ok := entityDate(entity); ok {
				inv.DueDate = date
			}
		case "currency":
			if value != "" {
				inv.Currency = strings.ToUpper(value)
			}
		case "line_item":
			if item, ok := e.mapLineItem(entity); ok {
				inv.Items = append(inv.Items, item)
			}
		}
	}
	for i := range inv.Items {
		inv.Items[i].Position = i + 1
	}
	e.log.Info("document scanned",
		"invoice", inv.InvoiceNumber,
		"supplier", inv.SupplierName,
		"items", len(inv.Items))
	return inv
}

func (e *Extractor) mapLineItem(entity *documentaipb.Document_Entity) (model.LineItem, bool) {
	item := model.LineItem{Quantity: 1}
	for _, prop := range entity.Properties {
		value := strings.TrimSpace(prop.MentionText)
		switch prop.Type {
		case "line_item/description":
			item.Description = value
		case "line_item/quantity":
			if q, err := strconv.Atoi(value); err == nil && q > 0 {
				item.Quantity = q
			}
		case "line_item/unit_price", "line_item/amount":
			if d, ok := parseAmount(value); ok {
				item.Price = d
			}
		}
	}
	if item.Description == "" {
		e.log.Warn("skipping line item without description")
		return model.LineItem{}, false
	}
	return item, true
}

func entityDate(entity *documentaipb.Document_Entity) (time.Time, bool) {
	if nv := entity.NormalizedValue; nv != nil {
		if dv := nv.GetDateValue(); dv != nil {
			return time.Date(int(dv.Year), time.Month(dv.Month), int(dv.Day), 0, 0, 0, 0, time.UTC), true
		}
	}
	text := strings.TrimSpace(entity.MentionText)
	for _, format := range []string{"2006-01-02", "02.01.2006", "02-01-2006", "01/02/2006"} {
		if date, err := time.Parse(format, text); err == nil {
			return date, true
		}
	}
	return time.Time{}, false
}

// parseAmount handles both German (1.234,56) and English (1,234.56)
// number formats and strips currency signs.
func parseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.TrimSpace(s)
	for _, junk := range []string{" ", "€", "$", "EUR", "USD"} {
		cleaned = strings.ReplaceAll(cleaned, junk, "")
	}
	if strings.Contains(cleaned, ",") {
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else if parts := strings.Split(cleaned, ","); len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		}
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
