package model

import (
	"strings"

	"github.com/google/uuid"
)

// NewInvoiceNumber generates an invoice number with a direction-based
// prefix and a random 8 character suffix, e.g. "IN-9F2C41AB".
func NewInvoiceNumber(d Direction) string {
	prefix := "IN"
	if d == DirectionOutgoing {
		prefix = "OUT"
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + strings.ToUpper(suffix)
}
