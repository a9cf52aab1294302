package model

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// FirestoreStore is the Firestore-backed InvoiceStore. Documents live under
// users/{tenant}/invoices, one document per invoice.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(ctx context.Context, projectID string, opts ...option.ClientOption) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, err
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Close() error { return s.client.Close() }

func (s *FirestoreStore) invoices(tenantID string) *firestore.CollectionRef {
	return s.client.Collection("users").Doc(tenantID).Collection(InvoiceCollection)
}

func (s *FirestoreStore) ListInvoices(ctx context.Context, tenantID string) ([]Invoice, error) {
	if tenantID == "" {
		return nil, ErrNoTenant
	}
	iter := s.invoices(tenantID).Documents(ctx)
	defer iter.Stop()

	var invs []Invoice
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, storeErr("list invoices", err)
		}
		inv, err := DecodeInvoiceDocument(doc.Ref.ID, doc.Data())
		if err != nil {
			return nil, storeErr("list invoices", err)
		}
		invs = append(invs, *inv)
	}
	return invs, nil
}

func (s *FirestoreStore) CreateInvoice(ctx context.Context, tenantID string, inv *Invoice) (string, error) {
	if tenantID == "" {
		return "", ErrNoTenant
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now
	ref, _, err := s.invoices(tenantID).Add(ctx, EncodeInvoiceDocument(inv))
	if err != nil {
		return "", storeErr("create invoice", err)
	}
	inv.ID = ref.ID
	inv.TenantID = tenantID
	return ref.ID, nil
}

// UpdateInvoice overwrites the stored document. There is no version check:
// concurrent saves of the same invoice apply last-write-wins.
func (s *FirestoreStore) UpdateInvoice(ctx context.Context, tenantID string, inv *Invoice) error {
	if tenantID == "" {
		return ErrNoTenant
	}
	inv.UpdatedAt = time.Now()
	_, err := s.invoices(tenantID).Doc(inv.ID).Set(ctx, EncodeInvoiceDocument(inv))
	return storeErr("update invoice", err)
}

func (s *FirestoreStore) DeleteInvoice(ctx context.Context, tenantID string, id string) error {
	if tenantID == "" {
		return ErrNoTenant
	}
	_, err := s.invoices(tenantID).Doc(id).Delete(ctx)
	return storeErr("delete invoice", err)
}
