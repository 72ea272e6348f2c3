// Package audit records donation lifecycle events on an append-only trail.
// Events are emitted from the donation service and persisted by a
// background worker; they are operator-facing and never surfaced to
// GraphQL callers.
package audit

import (
	"context"
	"time"
)

const (
	ActionDonationCreated       = "donation.created"
	ActionDonationStatusChanged = "donation.status_changed"
)

// Event is one lifecycle fact about a donation.
type Event struct {
	Timestamp  time.Time
	DonationID string
	ActorID    string
	Action     string
	FromStatus string
	ToStatus   string
	Detail     string
}

// Store is the audit sink. Append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByDonation(ctx context.Context, donationID string) ([]Event, error)
}
