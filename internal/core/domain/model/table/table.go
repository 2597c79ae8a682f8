package table

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

const (
	// NumberMin is the lowest table number printed in the dining room.
	NumberMin = 1
	// CapacityMin and CapacityMax bound the number of seats at a table.
	CapacityMin = 1
	CapacityMax = 50
)

var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable constructor")

// Table is a dining table and its exclusive binding to a waiter.
//
// Invariants:
//   - A waiter is bound if and only if the table is Assigned
//   - The version grows with every persisted change and is used by repositories as an
//     optimistic concurrency token, so two concurrent assignments have one winner
type Table struct {
	id       kernel.UUID
	number   int
	capacity int
	status   Status
	waiterID *kernel.UUID
	version  int64
	guard    guard.ConstructorGuard
}

// NewTable creates an Available table at version 1.
func NewTable(id kernel.UUID, number int, capacity int) (*Table, error) {
	t := &Table{
		status:  Available,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setCapacity(capacity),
	); err != nil {
		return nil, err
	}

	return t, nil
}

// RestoreTable rebuilds a table from persistence.
func RestoreTable(
	id kernel.UUID,
	number int,
	capacity int,
	status Status,
	waiterID *kernel.UUID,
	version int64,
) (*Table, error) {
	t := &Table{
		version: version,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		t.setID(id),
		t.setNumber(number),
		t.setCapacity(capacity),
		t.setBinding(status, waiterID),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Table) Validate() error {
	if t == nil {
		return ErrTableIsNotConstructed
	}
	return t.guard.Validate(ErrTableIsNotConstructed)
}

func (t *Table) ID() kernel.UUID {
	return t.id
}

func (t *Table) Number() int {
	return t.number
}

func (t *Table) Capacity() int {
	return t.capacity
}

func (t *Table) Status() Status {
	return t.status
}

// WaiterID returns the bound waiter, or nil for an Available table.
func (t *Table) WaiterID() *kernel.UUID {
	if t.waiterID == nil {
		return nil
	}
	id := *t.waiterID
	return &id
}

// Version is the persisted version this instance was loaded at.
func (t *Table) Version() int64 {
	return t.version
}

// IsAssignedTo reports whether the table is currently bound to the waiter.
func (t *Table) IsAssignedTo(waiterID kernel.UUID) bool {
	return t.status == Assigned && t.waiterID != nil && t.waiterID.IsEqual(waiterID)
}

// Assign binds the table to a waiter. An Assigned table cannot be taken over, not even
// by the waiter already bound to it.
func (t *Table) Assign(waiterID kernel.UUID) error {
	if err := waiterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("waiter id", err)
	}

	if t.status != Available {
		return errs.NewConflictError("table", t.id.String(), fmt.Sprintf("table %d is %s", t.number, t.status))
	}

	t.status = Assigned
	t.waiterID = &waiterID
	return nil
}

// Release frees the table. It reports false when the table was already Available.
func (t *Table) Release() bool {
	if t.status == Available {
		return false
	}

	t.status = Available
	t.waiterID = nil
	return true
}

func (t *Table) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Table) setNumber(number int) error {
	if number < NumberMin {
		return errs.NewValueIsInvalidErrorWithCause("number", fmt.Errorf("%d is lower than %d", number, NumberMin))
	}
	t.number = number
	return nil
}

func (t *Table) setCapacity(capacity int) error {
	if capacity < CapacityMin || capacity > CapacityMax {
		return errs.NewValueIsOutOfRangeError("capacity", capacity, CapacityMin, CapacityMax)
	}
	t.capacity = capacity
	return nil
}

func (t *Table) setBinding(status Status, waiterID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	if (status == Assigned) != (waiterID != nil) {
		return errs.NewValueIsInvalidErrorWithCause(
			"waiter id",
			fmt.Errorf("table in status %s has inconsistent waiter binding", status),
		)
	}
	if waiterID != nil {
		if err := waiterID.Validate(); err != nil {
			return err
		}
		id := *waiterID
		t.waiterID = &id
	}

	t.status = status
	return nil
}
