// Package hub keeps one tenant's invoice list in sync with the document
// store. It is the piece UI event handlers talk to: every mutation goes
// through the store first and only touches the local list once the store
// call succeeded, so the list never shows unsaved state as saved.
package hub

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoicehub/engine/model"
)

// State is the lifecycle of the invoice list:
// Loading -> Loaded -> (Mutating -> Loaded)*.
type State string

const (
	StateLoading  State = "loading"
	StateLoaded   State = "loaded"
	StateMutating State = "mutating"
)

// ErrNotFound is returned when an operation names an invoice that is not in
// the loaded list.
var ErrNotFound = errors.New("invoice not found")

// ErrSaveInFlight is returned when a form submits while its previous save
// has not finished yet.
var ErrSaveInFlight = errors.New("a save for this form is already in flight")

// Hub state transitions are expressed as events fed through apply, so every
// way the list can change is enumerable in one place.
type event any

type (
	eventLoadStarted     struct{}
	eventLoadFailed      struct{}
	eventInvoicesLoaded  struct{ invoices []model.Invoice }
	eventMutationStarted struct{}
	eventMutationFailed  struct{}
	eventInvoiceCreated  struct{ inv model.Invoice }
	eventInvoiceUpdated  struct{ inv model.Invoice }
	eventInvoiceDeleted  struct{ id string }
	eventSearchChanged   struct{ term string }
)

// Hub synchronizes one tenant's invoices. It is a single logical session:
// methods are not safe for concurrent use, matching a UI where mutations
// are user-triggered one at a time. Use FormSession to guard against
// duplicate submission of the same form.
type Hub struct {
	store    model.InvoiceStore
	tenantID string
	log      *slog.Logger
	clock    func() time.Time

	state             State
	invoices          []model.Invoice
	searchTerm        string
	filtered          []model.Invoice
	analytics         model.ListAnalytics
	filteredAnalytics model.ListAnalytics
	activity          model.ActivityFeed
}

// New builds a hub for the tenant supplied by the identity context. An
// empty tenant id is allowed here; operations will refuse to run until a
// tenant is present.
func New(store model.InvoiceStore, tenantID string, log *slog.Logger) *Hub {
	return &Hub{
		store:    store,
		tenantID: tenantID,
		log:      log,
		clock:    time.Now,
		state:    StateLoading,
	}
}

// WithClock replaces the time source. Status derivation and analytics
// depend on "today", so tests inject a fixed clock here.
func (h *Hub) WithClock(clock func() time.Time) *Hub {
	h.clock = clock
	return h
}

func (h *Hub) apply(ev event) {
	switch ev := ev.(type) {
	case eventLoadStarted:
		h.state = StateLoading
	case eventLoadFailed:
		// keep the prior list, the load can be retried
		h.state = StateLoaded
	case eventInvoicesLoaded:
		h.invoices = ev.invoices
		h.state = StateLoaded
	case eventMutationStarted:
		h.state = StateMutating
	case eventMutationFailed:
		h.state = StateLoaded
	case eventInvoiceCreated:
		h.invoices = append(h.invoices, ev.inv)
		h.state = StateLoaded
	case eventInvoiceUpdated:
		for i := range h.invoices {
			if h.invoices[i].ID == ev.inv.ID {
				h.invoices[i] = ev.inv
				break
			}
		}
		h.state = StateLoaded
	case eventInvoiceDeleted:
		out := h.invoices[:0:0]
		for _, inv := range h.invoices {
			if inv.ID != ev.id {
				out = append(out, inv)
			}
		}
		h.invoices = out
		h.state = StateLoaded
	case eventSearchChanged:
		h.searchTerm = ev.term
	}
	h.refresh()
}

// refresh recomputes the filtered view and both analytics snapshots. It
// runs after every applied event; analytics are never stale and never
// persisted.
func (h *Hub) refresh() {
	today := h.clock()
	h.filtered = model.FilterInvoices(h.invoices, h.searchTerm)
	h.analytics = model.ComputeAnalytics(h.invoices, today)
	h.filteredAnalytics = model.ComputeAnalytics(h.filtered, today)
}

// Load fetches all invoices for the tenant. On failure the prior list, if
// any, stays intact and the error is retryable.
func (h *Hub) Load(ctx context.Context) error {
	if h.tenantID == "" {
		return model.ErrNoTenant
	}
	h.apply(eventLoadStarted{})
	invs, err := h.store.ListInvoices(ctx, h.tenantID)
	if err != nil {
		h.apply(eventLoadFailed{})
		h.log.Warn("cannot load invoices", "tenant", h.tenantID, "error", err)
		return err
	}
	h.apply(eventInvoicesLoaded{invoices: invs})
	return nil
}

// Save validates, recomputes and persists an invoice. A missing id means
// create: the store assigns the id and the invoice is appended to the
// list. Otherwise the stored document and the matching list entry are
// replaced. The list is only touched after the store call succeeded.
func (h *Hub) Save(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	if h.tenantID == "" {
		return inv, model.ErrNoTenant
	}
	model.EnsureDateIssued(&inv, h.clock())
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = model.NewInvoiceNumber(inv.Direction)
	}
	if fe := model.VerifyInvoice(&inv); fe != nil {
		return inv, fe
	}
	inv = model.Recompute(inv, h.clock())

	h.apply(eventMutationStarted{})
	if inv.ID == "" {
		id, err := h.store.CreateInvoice(ctx, h.tenantID, &inv)
		if err != nil {
			h.apply(eventMutationFailed{})
			return inv, err
		}
		inv.ID = id
		h.apply(eventInvoiceCreated{inv: inv})
		h.activity.Record(model.ActivityCreated, inv, h.clock())
		h.log.Info("invoice created", "tenant", h.tenantID, "invoice", inv.InvoiceNumber)
		return inv, nil
	}
	if err := h.store.UpdateInvoice(ctx, h.tenantID, &inv); err != nil {
		h.apply(eventMutationFailed{})
		return inv, err
	}
	h.apply(eventInvoiceUpdated{inv: inv})
	h.activity.Record(model.ActivityUpdated, inv, h.clock())
	h.log.Info("invoice updated", "tenant", h.tenantID, "invoice", inv.InvoiceNumber)
	return inv, nil
}

// SaveForm is Save guarded by a per-form in-flight flag, for UIs that must
// block duplicate submission while a save is pending. Saves of different
// invoices through different forms stay independent.
func (h *Hub) SaveForm(ctx context.Context, sess *FormSession, inv model.Invoice) (model.Invoice, error) {
	if !sess.tryBegin() {
		return inv, ErrSaveInFlight
	}
	defer sess.end()
	return h.Save(ctx, inv)
}

// Remove deletes an invoice from the store, then from the list. If the
// store call fails the list is left unchanged.
func (h *Hub) Remove(ctx context.Context, id string) error {
	if h.tenantID == "" {
		return model.ErrNoTenant
	}
	inv, ok := h.find(id)
	if !ok {
		return ErrNotFound
	}
	h.apply(eventMutationStarted{})
	if err := h.store.DeleteInvoice(ctx, h.tenantID, id); err != nil {
		h.apply(eventMutationFailed{})
		return err
	}
	h.apply(eventInvoiceDeleted{id: id})
	h.activity.Record(model.ActivityDeleted, inv, h.clock())
	h.log.Info("invoice deleted", "tenant", h.tenantID, "invoice", inv.InvoiceNumber)
	return nil
}

// UpdatePaymentStatus records a payment against an invoice and saves it.
// Totals and status are recomputed on the way through Save.
func (h *Hub) UpdatePaymentStatus(ctx context.Context, id string, paidAmount decimal.Decimal) (model.Invoice, error) {
	inv, ok := h.find(id)
	if !ok {
		return model.Invoice{}, ErrNotFound
	}
	inv.PaidAmount = paidAmount
	return h.Save(ctx, inv)
}

// SetSearchTerm changes the free-text filter and recomputes the filtered
// view and its analytics.
func (h *Hub) SetSearchTerm(term string) {
	h.apply(eventSearchChanged{term: term})
}

func (h *Hub) find(id string) (model.Invoice, bool) {
	for _, inv := range h.invoices {
		if inv.ID == id {
			return inv, true
		}
	}
	return model.Invoice{}, false
}

func (h *Hub) State() State { return h.state }

// Invoices returns a copy of the full list.
func (h *Hub) Invoices() []model.Invoice {
	out := make([]model.Invoice, len(h.invoices))
	copy(out, h.invoices)
	return out
}

// Filtered returns the invoices matching the current search term.
func (h *Hub) Filtered() []model.Invoice {
	out := make([]model.Invoice, len(h.filtered))
	copy(out, h.filtered)
	return out
}

func (h *Hub) Analytics() model.ListAnalytics { return h.analytics }

// FilteredAnalytics are the analytics over the current search subset.
func (h *Hub) FilteredAnalytics() model.ListAnalytics { return h.filteredAnalytics }

// RecentActivity returns up to n activity entries, newest first.
func (h *Hub) RecentActivity(n int) []model.Activity {
	return h.activity.Recent(n)
}
