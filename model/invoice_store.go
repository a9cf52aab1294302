package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListInvoices returns all invoices for the given tenant, items in display
// order.
func (s *Store) ListInvoices(ctx context.Context, tenantID string) ([]Invoice, error) {
	if tenantID == "" {
		return nil, ErrNoTenant
	}
	var invs []Invoice
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("tenant_id = ?", tenantID).Order("position ASC")
		}).
		Order("created_at ASC").
		Find(&invs).Error
	if err != nil {
		return nil, storeErr("list invoices", err)
	}
	return invs, nil
}

// CreateInvoice stores a new invoice and its items, assigning the id and
// timestamps. The assigned id is returned and also written to inv.
func (s *Store) CreateInvoice(ctx context.Context, tenantID string, inv *Invoice) (string, error) {
	if tenantID == "" {
		return "", ErrNoTenant
	}
	id := uuid.NewString()
	now := time.Now()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		inv.ID = id
		inv.TenantID = tenantID
		inv.CreatedAt = now
		inv.UpdatedAt = now
		if err := tx.Omit("Items").Create(inv).Error; err != nil {
			return err
		}
		return createItems(tx, inv, tenantID)
	})
	if err != nil {
		inv.ID = ""
		return "", storeErr("create invoice", err)
	}
	return id, nil
}

// UpdateInvoice replaces a stored invoice and all of its items. Items are
// hard-deleted and recreated; they carry no identity of their own.
func (s *Store) UpdateInvoice(ctx context.Context, tenantID string, inv *Invoice) error {
	if tenantID == "" {
		return ErrNoTenant
	}
	if inv.ID == "" {
		return storeErr("update invoice", fmt.Errorf("invoice has no id"))
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&Invoice{}).
			Where("id = ? AND tenant_id = ?", inv.ID, tenantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		inv.TenantID = tenantID
		inv.UpdatedAt = time.Now()
		if err := tx.Omit("Items", "CreatedAt").Save(inv).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ? AND tenant_id = ?", inv.ID, tenantID).
			Delete(&LineItem{}).Error; err != nil {
			return err
		}
		return createItems(tx, inv, tenantID)
	})
	return storeErr("update invoice", err)
}

// DeleteInvoice removes an invoice and all referenced items.
func (s *Store) DeleteInvoice(ctx context.Context, tenantID string, id string) error {
	if tenantID == "" {
		return ErrNoTenant
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ? AND tenant_id = ?", id, tenantID).
			Delete(&LineItem{}).Error; err != nil {
			return err
		}
		return tx.Where("tenant_id = ?", tenantID).Delete(&Invoice{ID: id}).Error
	})
	return storeErr("delete invoice", err)
}

// GetInvoice loads a single invoice by id within the tenant scope.
func (s *Store) GetInvoice(ctx context.Context, tenantID string, id string) (*Invoice, error) {
	if tenantID == "" {
		return nil, ErrNoTenant
	}
	var inv Invoice
	err := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("tenant_id = ?", tenantID).Order("position ASC")
		}).
		First(&inv).Error
	if err != nil {
		return nil, storeErr("get invoice", err)
	}
	return &inv, nil
}

func createItems(tx *gorm.DB, inv *Invoice, tenantID string) error {
	if len(inv.Items) == 0 {
		return nil
	}
	for i := range inv.Items {
		inv.Items[i].ID = 0
		inv.Items[i].InvoiceID = inv.ID
		inv.Items[i].TenantID = tenantID
		inv.Items[i].Position = i + 1
	}
	return tx.Omit("ID").Create(&inv.Items).Error
}
