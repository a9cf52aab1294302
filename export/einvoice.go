package export

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/speedata/einvoice"

	"github.com/invoicehub/engine/model"
)

// RenderEN16931 writes the invoice as EN 16931 e-invoice XML. The seller
// party comes from the tenant settings, the buyer is the invoice
// counterparty. The same validation gate as for PDF export applies.
func RenderEN16931(inv model.Invoice, settings *model.Settings, today time.Time, w io.Writer) error {
	model.EnsureDateIssued(&inv, today)
	if fe := model.VerifyInvoice(&inv); fe != nil {
		return &ExportError{Fields: fe}
	}
	inv = model.Recompute(inv, today)

	currency := inv.Currency
	if currency == "" {
		currency = settings.DefaultCurrency()
	}

	zi := einvoice.Invoice{
		InvoiceNumber:       inv.InvoiceNumber,
		InvoiceTypeCode:     380,
		Profile:             einvoice.CProfileEN16931,
		InvoiceDate:         inv.DateIssued,
		InvoiceCurrencyCode: currency,
		TaxCurrencyCode:     currency,
		Notes: []einvoice.Note{{
			Text: inv.Notes,
		}},
		Seller: einvoice.Party{
			Name:              settings.CompanyName,
			VATaxRegistration: settings.VATID,
			PostalAddress: &einvoice.PostalAddress{
				Line1:        settings.Address1,
				Line2:        settings.Address2,
				City:         settings.City,
				PostcodeCode: settings.ZIP,
				CountryID:    settings.CountryID(),
			},
			DefinedTradeContact: []einvoice.DefinedTradeContact{{
				PersonName: settings.InvoiceContact,
				EMail:      settings.InvoiceEMail,
			}},
		},
		Buyer: einvoice.Party{
			Name: inv.Counterparty(),
			DefinedTradeContact: []einvoice.DefinedTradeContact{{
				EMail: inv.ClientEmail,
			}},
		},
		SpecifiedTradePaymentTerms: []einvoice.SpecifiedTradePaymentTerms{{
			DueDate: inv.DueDate,
		}},
	}

	for _, item := range inv.Items {
		li := einvoice.InvoiceLine{
			LineID:                   fmt.Sprintf("%d", item.Position),
			ItemName:                 item.Description,
			BilledQuantity:           decimal.NewFromInt(int64(item.Quantity)),
			BilledQuantityUnit:       "C62",
			NetPrice:                 item.Price,
			TaxRateApplicablePercent: inv.TaxRate,
			Total:                    item.Total(),
			TaxTypeCode:              "VAT",
			TaxCategoryCode:          "S",
		}
		zi.InvoiceLines = append(zi.InvoiceLines, li)
	}
	zi.UpdateApplicableTradeTax(map[string]string{})
	zi.UpdateTotals()

	if err := zi.Write(w); err != nil {
		return &ExportError{Err: err}
	}
	return nil
}
