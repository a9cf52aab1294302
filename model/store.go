package model

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoTenant is returned when an operation runs without a tenant id from
// the identity context. No store call is attempted in that case.
var ErrNoTenant = errors.New("no tenant id supplied")

// InvoiceCollection is the collection path invoices live under, relative to
// the tenant.
const InvoiceCollection = "invoices"

// InvoiceStore is the document store collaborator. Implementations scope
// every call to the given tenant and must not mutate caller state on
// failure; all I/O failures come back wrapped in *StoreError.
type InvoiceStore interface {
	ListInvoices(ctx context.Context, tenantID string) ([]Invoice, error)
	CreateInvoice(ctx context.Context, tenantID string, inv *Invoice) (string, error)
	UpdateInvoice(ctx context.Context, tenantID string, inv *Invoice) error
	DeleteInvoice(ctx context.Context, tenantID string, id string) error
}

// StoreError wraps an I/O failure from the document store. Store errors are
// retryable: local state is never corrupted by a failed call, so the user
// can simply try again.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Retryable reports whether the operation may be repeated safely. Always
// true for store errors.
func (e *StoreError) Retryable() bool { return true }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
