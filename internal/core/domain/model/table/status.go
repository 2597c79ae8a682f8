package table

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status is the occupancy of a table.
//
//	Available ──assign(waiter)──> Assigned ──release──> Available
type Status int

const (
	Unknown Status = iota
	// Available tables can be taken by a waiter.
	Available
	// Assigned tables are bound to exactly one waiter until payment releases them.
	Assigned
)

var statusNames = map[Status]string{
	Available: "Available",
	Assigned:  "Assigned",
}

func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid table status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}
