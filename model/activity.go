package model

import (
	"time"

	"github.com/xeonx/timeago"
)

type ActivityKind string

const (
	ActivityCreated ActivityKind = "Created"
	ActivityUpdated ActivityKind = "Updated"
	ActivityDeleted ActivityKind = "Deleted"
)

var timeagoEnglish = timeago.NoMax(timeago.English)

// Activity is one entry in the recent-activity panel.
type Activity struct {
	Kind          ActivityKind
	InvoiceNumber string
	Counterparty  string
	At            time.Time
}

// When renders the timestamp relative to now ("5 minutes ago").
func (a Activity) When() string {
	return timeagoEnglish.Format(a.At)
}

// ActivityFeed collects the mutations applied during a session, newest
// last. It is session-local and never persisted.
type ActivityFeed struct {
	entries []Activity
}

func (f *ActivityFeed) Record(kind ActivityKind, inv Invoice, at time.Time) {
	f.entries = append(f.entries, Activity{
		Kind:          kind,
		InvoiceNumber: inv.InvoiceNumber,
		Counterparty:  inv.Counterparty(),
		At:            at,
	})
}

// Recent returns up to n entries, most recent first.
func (f *ActivityFeed) Recent(n int) []Activity {
	if n > len(f.entries) {
		n = len(f.entries)
	}
	out := make([]Activity, 0, n)
	for i := len(f.entries) - 1; i >= len(f.entries)-n; i-- {
		out = append(out, f.entries[i])
	}
	return out
}
