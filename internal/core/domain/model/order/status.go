package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status is the order-level lifecycle state. It is derived from the dish line items
// (see services.OrderAggregator) except for Served, which a waiter sets explicitly.
//
// State transitions:
//
//	Ordered ──(all dishes prepared)──> Prepared ──(waiter)──> Served
//
// Served is terminal; the aggregation never moves an order out of it.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Ordered is the initial status: at least one dish is not prepared yet.
	Ordered

	// Prepared means every dish line item is prepared and the order waits for service.
	Prepared

	// Served is set by the waiter once the prepared order reached the table.
	Served
)

var statusNames = map[Status]string{
	Ordered:  "order",
	Prepared: "prepared",
	Served:   "served",
}

// ParseStatus converts the wire name ("order", "prepared", "served") into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not an order status", s))
}

// Validate checks if the Status value is one of Ordered, Prepared or Served.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsOpen reports whether the order still needs attention from the kitchen or the waiter.
func (s Status) IsOpen() bool {
	return s == Ordered || s == Prepared
}

// Prepare transitions Ordered -> Prepared. It is driven by the aggregation rule only.
func (s Status) Prepare() (Status, error) {
	if s != Ordered {
		return Unknown, errs.NewInvalidTransitionError("order", s, "prepare")
	}
	return Prepared, nil
}

// Serve transitions Prepared -> Served. Every other source status is rejected, including
// Served itself.
func (s Status) Serve() (Status, error) {
	if s != Prepared {
		return Unknown, errs.NewInvalidTransitionError("order", s, "serve")
	}
	return Served, nil
}
