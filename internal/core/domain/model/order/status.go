package order

import (
	"fmt"

	"jobmarket/internal/pkg/errs"
)

// Status represents the lifecycle state of an order as seen by this
// worker. It implements a state machine with defined transitions to
// ensure orders follow the correct marketplace workflow.
//
// State transitions:
//
//	Offered ──> Accepted ──> Approved ──> Completed
//	   │    <──     │            │
//	   │ (reoffer on timeout/rollback)
//	   └──────> Rejected  (also reachable from any non-terminal state
//	                       via external cancellation)
//
// Acceptance is optimistic and user-triggered; approval only ever comes
// from an authoritative backend update. Completed and Rejected are
// terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and wire formats.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Offered is the initial status: the order is visible to the worker
	// but not yet committed to anyone.
	Offered

	// Accepted indicates this worker optimistically took the order;
	// backend confirmation has not arrived yet.
	Accepted

	// Approved indicates the backend durably recorded the assignment to
	// this worker. Requester contact details become available here.
	Approved

	// Completed indicates the work was finished. Terminal.
	Completed

	// Rejected indicates the order was declined locally, withdrawn, or
	// taken by another worker. Terminal.
	Rejected
)

// getStatusStrings returns a map of Status values to their string
// representations, including Unknown.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Offered:   "offered",
		Accepted:  "accepted",
		Approved:  "approved",
		Completed: "completed",
		Rejected:  "rejected",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Offered:   "offered",
		Accepted:  "accepted",
		Approved:  "approved",
		Completed: "completed",
		Rejected:  "rejected",
	}
}

// StatusFromString parses a wire-format status name.
// Returns an error for unknown names; used when decoding backend
// snapshots and push events.
func StatusFromString(s string) (Status, error) {
	for status, name := range getValidStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire-format name of the status.
// Safe to call on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Rank returns the position of the status along the forward lifecycle.
// Reconciliation uses ranks to detect stale snapshots: a snapshot may
// never move an order to a lower rank. Rejected shares the top rank with
// Completed because both are terminal.
func (s Status) Rank() int {
	switch s {
	case Offered:
		return 1
	case Accepted:
		return 2
	case Approved:
		return 3
	case Completed, Rejected:
		return 4
	default:
		return 0
	}
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Rejected
}

// IsActive reports whether the order occupies the worker's single
// active slot (accepted but not yet finished).
func (s Status) IsActive() bool {
	return s == Accepted || s == Approved
}

// Accept transitions the status to Accepted.
//
// Valid transitions:
//   - Offered -> Accepted (optimistic local acceptance)
//
// Returns a ConflictError for any other starting status.
func (s Status) Accept() (Status, error) {
	if s != Offered {
		return 0, errs.NewConflictError(
			fmt.Sprintf("%s is not a valid status to accept", s.String()),
		)
	}
	return Accepted, nil
}

// Confirm transitions the status to Approved.
//
// Valid transitions:
//   - Accepted -> Approved (authoritative backend confirmation only)
//
// Returns a ConflictError for any other starting status. Confirm is
// never driven by direct user action.
func (s Status) Confirm() (Status, error) {
	if s != Accepted {
		return 0, errs.NewConflictError(
			fmt.Sprintf("%s is not a valid status to confirm", s.String()),
		)
	}
	return Approved, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Approved -> Completed
//
// Completing a merely Accepted order is a conflict: completion requires
// the backend to have confirmed the assignment first.
func (s Status) Complete() (Status, error) {
	if s != Approved {
		return 0, errs.NewConflictError(
			fmt.Sprintf("%s is not a valid status to complete", s.String()),
		)
	}
	return Completed, nil
}

// Cancel transitions the status to Rejected.
//
// Valid from any non-terminal status; used for local rejection and for
// authoritative updates reporting the order withdrawn or taken by
// another worker.
func (s Status) Cancel() (Status, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	if s.IsTerminal() {
		return 0, errs.NewConflictError(
			fmt.Sprintf("%s is not a valid status to cancel", s.String()),
		)
	}
	return Rejected, nil
}

// Reoffer transitions the status back to Offered.
//
// Valid transitions:
//   - Accepted -> Offered (rollback of an unconfirmed accept, either
//     because the backend rejected it or the confirmation window expired)
//
// This is the only backward edge in the machine and exists solely for
// optimistic-transition rollback.
func (s Status) Reoffer() (Status, error) {
	if s != Accepted {
		return 0, errs.NewConflictError(
			fmt.Sprintf("%s is not a valid status to reoffer", s.String()),
		)
	}
	return Offered, nil
}
