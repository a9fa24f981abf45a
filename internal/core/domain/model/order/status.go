package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the processing stage an order has reached.
//
// State transitions (forward only, one step at a time):
//
//	Created ──prepare──> Prepared ──control──> Controlled ──pack──> Packed
//
// Completed is a reserved label kept for compatibility with stored data and
// upstream vocabularies. No transition produces it and it is rejected as a
// stored or requested status.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota
	Created
	Prepared
	Controlled
	Packed
	// Completed is reserved and unreachable.
	Completed
)

var statusNames = map[Status]string{
	Unknown:    "UNKNOWN",
	Created:    "CREATED",
	Prepared:   "PREPARED",
	Controlled: "CONTROLLED",
	Packed:     "PACKED",
	Completed:  "COMPLETED",
}

// Statuses lists the reachable statuses in lifecycle order.
func Statuses() []Status {
	return []Status{Created, Prepared, Controlled, Packed}
}

// ParseStatus converts a stored or requested status name into a Status.
// Matching ignores case. Only reachable statuses are accepted.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for _, status := range Statuses() {
		if statusNames[status] == normalized {
			return status, nil
		}
	}
	if normalized == statusNames[Completed] {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%s is reserved", normalized))
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate accepts only the four reachable statuses.
func (s Status) Validate() error {
	if s < Created || s > Packed {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Packed
}

// Reached reports whether the lifecycle has gone through stage.
//
// Example:
//
//	Controlled.Reached(Prepared) // true
//	Created.Reached(Packed)      // false
func (s Status) Reached(stage Status) bool {
	return s.Validate() == nil && s >= stage
}

// Prepare moves Created to Prepared.
func (s Status) Prepare() (Status, error) {
	return s.advance(Created, Prepared, "prepared")
}

// Control moves Prepared to Controlled.
func (s Status) Control() (Status, error) {
	return s.advance(Prepared, Controlled, "controlled")
}

// Pack moves Controlled to Packed.
func (s Status) Pack() (Status, error) {
	return s.advance(Controlled, Packed, "packed")
}

func (s Status) advance(from, to Status, action string) (Status, error) {
	if s != from {
		return s, errs.NewInvalidStateTransitionError("order", action, s.String(), from.String())
	}
	return to, nil
}
