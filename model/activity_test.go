package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/invoicehub/engine/fixtures"
	"github.com/invoicehub/engine/model"
)

func TestActivityFeed(t *testing.T) {
	var feed model.ActivityFeed
	feed.Record(model.ActivityCreated, fixtures.Invoice(fixtures.WithInvoiceNumber("IN-FIRST001")), fixtures.Today)
	feed.Record(model.ActivityUpdated, fixtures.Invoice(fixtures.WithInvoiceNumber("IN-SECOND01")), fixtures.Today.Add(time.Hour))
	feed.Record(model.ActivityDeleted, fixtures.Invoice(fixtures.WithInvoiceNumber("IN-THIRD001")), fixtures.Today.Add(2*time.Hour))

	recent := feed.Recent(2)
	if len(recent) != 2 {
		t.Fatalf("Recent(2) returned %d entries, want 2", len(recent))
	}
	if recent[0].InvoiceNumber != "IN-THIRD001" || recent[0].Kind != model.ActivityDeleted {
		t.Errorf("newest entry = %+v, want the delete", recent[0])
	}
	if recent[1].InvoiceNumber != "IN-SECOND01" {
		t.Errorf("second entry = %+v, want the update", recent[1])
	}

	if got := feed.Recent(10); len(got) != 3 {
		t.Errorf("Recent(10) returned %d entries, want all 3", len(got))
	}
}

func TestActivity_When(t *testing.T) {
	a := model.Activity{At: time.Now().Add(-5 * time.Minute)}
	if got := a.When(); !strings.Contains(got, "ago") {
		t.Errorf("When = %q, want a relative time", got)
	}
}
