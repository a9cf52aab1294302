package model_test

import (
	"context"
	"errors"
	"testing"

	"github.com/invoicehub/engine/fixtures"
	"github.com/invoicehub/engine/model"
)

func TestStore_CreateAndList(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	inv := fixtures.Invoice(fixtures.WithInvoiceNumber("IN-STORE001"))
	id, err := store.CreateInvoice(ctx, fixtures.DefaultTenantID, &inv)
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if id == "" {
		t.Fatal("CreateInvoice should assign an id")
	}
	if inv.ID != id {
		t.Errorf("inv.ID = %q, want %q", inv.ID, id)
	}

	invs, err := store.ListInvoices(ctx, fixtures.DefaultTenantID)
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if len(invs) != 1 {
		t.Fatalf("listed %d invoices, want 1", len(invs))
	}
	got := invs[0]
	if got.InvoiceNumber != "IN-STORE001" {
		t.Errorf("InvoiceNumber = %q, want %q", got.InvoiceNumber, "IN-STORE001")
	}
	if len(got.Items) != 3 {
		t.Fatalf("items = %d, want 3", len(got.Items))
	}
	for i, item := range got.Items {
		if item.Position != i+1 {
			t.Errorf("item %d position = %d, want %d", i, item.Position, i+1)
		}
	}
	if !got.Total.Equal(inv.Total) {
		t.Errorf("Total = %s, want %s", got.Total, inv.Total)
	}
}

func TestStore_Update(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	inv := fixtures.Invoice()
	if _, err := store.CreateInvoice(ctx, fixtures.DefaultTenantID, &inv); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	inv.ClientName = "Renamed GmbH"
	inv.Items = []model.LineItem{fixtures.Item("Single", 1, 99.00)}
	inv = model.Recompute(inv, fixtures.Today)
	if err := store.UpdateInvoice(ctx, fixtures.DefaultTenantID, &inv); err != nil {
		t.Fatalf("UpdateInvoice failed: %v", err)
	}

	loaded, err := store.GetInvoice(ctx, fixtures.DefaultTenantID, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoice failed: %v", err)
	}
	if loaded.ClientName != "Renamed GmbH" {
		t.Errorf("ClientName = %q, want %q", loaded.ClientName, "Renamed GmbH")
	}
	if len(loaded.Items) != 1 {
		t.Fatalf("items = %d, want 1 after replacement", len(loaded.Items))
	}
	if loaded.Items[0].Description != "Single" {
		t.Errorf("item description = %q, want %q", loaded.Items[0].Description, "Single")
	}
}

func TestStore_UpdateUnknownInvoice(t *testing.T) {
	store := fixtures.NewTestStore(t)
	inv := fixtures.Invoice(fixtures.WithID("does-not-exist"))

	err := store.UpdateInvoice(context.Background(), fixtures.DefaultTenantID, &inv)
	if err == nil {
		t.Fatal("updating an unknown invoice should fail")
	}
	var se *model.StoreError
	if !errors.As(err, &se) {
		t.Errorf("err = %T, want *model.StoreError", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	inv := fixtures.Invoice()
	if _, err := store.CreateInvoice(ctx, fixtures.DefaultTenantID, &inv); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if err := store.DeleteInvoice(ctx, fixtures.DefaultTenantID, inv.ID); err != nil {
		t.Fatalf("DeleteInvoice failed: %v", err)
	}

	invs, err := store.ListInvoices(ctx, fixtures.DefaultTenantID)
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if len(invs) != 0 {
		t.Errorf("listed %d invoices after delete, want 0", len(invs))
	}
}

func TestStore_TenantScoping(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	mine := fixtures.Invoice(fixtures.WithInvoiceNumber("IN-MINE0001"))
	if _, err := store.CreateInvoice(ctx, "tenant-a", &mine); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	theirs := fixtures.Invoice(fixtures.WithInvoiceNumber("IN-THEIRS01"))
	if _, err := store.CreateInvoice(ctx, "tenant-b", &theirs); err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	invs, err := store.ListInvoices(ctx, "tenant-a")
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if len(invs) != 1 || invs[0].InvoiceNumber != "IN-MINE0001" {
		t.Errorf("tenant-a sees %v, want only its own invoice", invs)
	}

	// deleting across tenants must not touch the other tenant's record
	if err := store.DeleteInvoice(ctx, "tenant-a", theirs.ID); err != nil {
		t.Fatalf("DeleteInvoice failed: %v", err)
	}
	other, err := store.ListInvoices(ctx, "tenant-b")
	if err != nil {
		t.Fatalf("ListInvoices failed: %v", err)
	}
	if len(other) != 1 {
		t.Error("tenant-b's invoice was deleted through the wrong tenant")
	}
}

func TestStore_NoTenant(t *testing.T) {
	store := fixtures.NewTestStore(t)
	ctx := context.Background()

	if _, err := store.ListInvoices(ctx, ""); !errors.Is(err, model.ErrNoTenant) {
		t.Errorf("ListInvoices err = %v, want ErrNoTenant", err)
	}
	inv := fixtures.Invoice()
	if _, err := store.CreateInvoice(ctx, "", &inv); !errors.Is(err, model.ErrNoTenant) {
		t.Errorf("CreateInvoice err = %v, want ErrNoTenant", err)
	}
}
