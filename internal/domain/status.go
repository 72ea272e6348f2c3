package domain

import (
	dErrors "github.com/theusc6/global-impact-platform/pkg/domain-errors"
)

// DonationStatus is the donation lifecycle state.
//
// Lifecycle: PENDING → PROCESSING → {COMPLETED | FAILED}. COMPLETED and
// FAILED are terminal. A status never moves backward and never skips from
// PENDING straight to COMPLETED.
type DonationStatus string

const (
	StatusPending    DonationStatus = "PENDING"
	StatusProcessing DonationStatus = "PROCESSING"
	StatusCompleted  DonationStatus = "COMPLETED"
	StatusFailed     DonationStatus = "FAILED"
)

// transitions is the complete table of legal status moves. Absence means
// the transition is illegal; there are no self-edges.
var transitions = map[DonationStatus]map[DonationStatus]bool{
	StatusPending: {
		StatusProcessing: true,
		StatusFailed:     true,
	},
	StatusProcessing: {
		StatusCompleted: true,
		StatusFailed:    true,
	},
	StatusCompleted: {},
	StatusFailed:    {},
}

// ParseDonationStatus validates a raw status value.
func ParseDonationStatus(s string) (DonationStatus, error) {
	status := DonationStatus(s)
	if !status.Valid() {
		return "", dErrors.Newf(dErrors.CodeBadRequest, "unknown donation status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the four lifecycle states.
func (s DonationStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether s accepts no further transitions.
func (s DonationStatus) Terminal() bool {
	targets, ok := transitions[s]
	return ok && len(targets) == 0
}

// CanTransitionTo reports whether the move from s to target is in the
// transition table.
func (s DonationStatus) CanTransitionTo(target DonationStatus) bool {
	return transitions[s][target]
}

// Transition checks the move from current to requested and returns the new
// status, or an illegal-transition error naming both states. It never
// mutates anything; persisting the result is the store's concern.
func Transition(current, requested DonationStatus) (DonationStatus, error) {
	if !current.CanTransitionTo(requested) {
		return "", dErrors.Newf(dErrors.CodeIllegalTransition,
			"cannot transition donation from %s to %s", current, requested)
	}
	return requested, nil
}
