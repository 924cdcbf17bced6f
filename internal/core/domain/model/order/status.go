package order

import (
	"fmt"
	"strings"

	"ordercore/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Processing ──> Ready ──> Completed
//	   │            │              │           │
//	   └────────────┴──────────────┴───────────┴──> Cancelled
//
// Completed and Cancelled are terminal. Every legal edge is listed in one table,
// so the whole state machine can be read and tested in one place.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status set at checkout.
	Pending

	// Confirmed means a manager accepted the order. Stamps confirmedAt.
	Confirmed

	// Processing means the order is being assembled.
	Processing

	// Ready means the order awaits pickup or handover.
	Ready

	// Completed is terminal. Stamps completedAt.
	Completed

	// Cancelled is terminal and reachable from every non-terminal status.
	Cancelled
)

// transitions is the complete table of legal status edges.
//
//nolint:exhaustive // Unknown has no outgoing edges
var transitions = map[Status][]Status{
	Pending:    {Confirmed, Cancelled},
	Confirmed:  {Processing, Cancelled},
	Processing: {Ready, Cancelled},
	Ready:      {Completed, Cancelled},
	Completed:  {},
	Cancelled:  {},
}

var statusNames = map[Status]string{
	Unknown:    "UNKNOWN",
	Pending:    "PENDING",
	Confirmed:  "CONFIRMED",
	Processing: "PROCESSING",
	Ready:      "READY",
	Completed:  "COMPLETED",
	Cancelled:  "CANCELLED",
}

// ParseStatus converts a persisted or client-supplied name (case-insensitive) into a Status.
func ParseStatus(s string) (Status, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for status, n := range statusNames {
		if status != Unknown && n == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is one of the lifecycle states.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the upper-case name used in storage, transport and error messages.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo reports whether target is listed as a legal edge from s.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s Status) AllowedTransitions() []Status {
	out := make([]Status, len(transitions[s]))
	copy(out, transitions[s])
	return out
}

// TransitionTo returns target when the edge s -> target is legal.
//
// Returns:
//   - (target, nil) on a legal transition
//   - (s, InvalidTransitionError) naming both states otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return s, errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return target, nil
}
