package sale

import (
	"fmt"

	"sales/internal/pkg/errs"
)

// Status represents the lifecycle state of a sale.
// It implements a state machine with defined transitions to ensure
// sales follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Completed
//
// A sale may also be created directly in Completed status (in-store sales).
// Pending sales carry an expiration deadline; expired pending sales are
// removed by the cleanup sweep rather than transitioned.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is a reservation-style sale awaiting confirmation.
	// Pending sales always carry an expiration deadline.
	StatusPending

	// StatusCompleted is a confirmed sale. This is a final state.
	StatusCompleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		StatusPending:   "PENDING",
		StatusCompleted: "COMPLETED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusPending:   "PENDING",
		StatusCompleted: "COMPLETED",
	}
}

// StatusFromString parses a status from its wire representation
// ("PENDING" or "COMPLETED"). An empty string defaults to COMPLETED,
// matching the sale-creation request contract.
func StatusFromString(s string) (Status, error) {
	if s == "" {
		return StatusCompleted, nil
	}
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid status", s),
	)
}

// Validate checks if the Status value is valid.
// Valid statuses are: PENDING, COMPLETED.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Pending -> Completed
//
// Returns:
//   - (StatusCompleted, nil) on valid transition
//   - (0, error) if the sale is not pending
func (s Status) Complete() (Status, error) {
	if s != StatusPending {
		return 0, errs.NewStateConflictError("complete", s.String())
	}

	return StatusCompleted, nil
}
