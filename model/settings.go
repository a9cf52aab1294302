package model

import (
	"github.com/biter777/countries"
	"github.com/shopspring/decimal"
)

// Settings contains per-tenant business data used on rendered invoices.
type Settings struct {
	ID             uint   `gorm:"primarykey"`
	TenantID       string `gorm:"uniqueIndex"`
	CompanyName    string
	InvoiceContact string
	InvoiceEMail   string
	Address1       string
	Address2       string
	City           string
	ZIP            string
	CountryCode    string
	VATID          string
	Currency       string
	DefaultTaxRate decimal.Decimal
}

// CountryID returns the two letter alpha code for the configured country.
func (s *Settings) CountryID() string {
	c := countries.ByName(s.CountryCode)
	if c == countries.Unknown {
		return "DE" // default
	}
	return c.Alpha2()
}

// DefaultCurrency returns the stored currency code, falling back to the
// currency of the configured country.
func (s *Settings) DefaultCurrency() string {
	if s.Currency != "" {
		return s.Currency
	}
	c := countries.ByName(s.CountryCode)
	if c == countries.Unknown {
		return "EUR"
	}
	return c.Currency().Alpha()
}

// LoadSettings loads the tenant settings, initialising an empty record when
// none exists yet.
func (s *Store) LoadSettings(tenantID string) (*Settings, error) {
	c := &Settings{}
	result := s.db.FirstOrInit(c, &Settings{TenantID: tenantID})
	return c, result.Error
}

// SaveSettings saves the tenant's settings.
func (s *Store) SaveSettings(settings *Settings) error {
	return s.db.Save(settings).Error
}
