package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrAssignTableCommandIsNotConstructed = errors.New(
	"AssignTableCommand must be created via NewAssignTableCommand constructor",
)

// AssignTableCommand binds a table to the waiter seating guests at it.
type AssignTableCommand struct {
	tableID  kernel.UUID
	waiterID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignTableCommand(tableID, waiterID kernel.UUID) (AssignTableCommand, error) {
	if err := errors.Join(
		requireID("table id", tableID),
		requireID("waiter id", waiterID),
	); err != nil {
		return AssignTableCommand{}, err
	}

	return AssignTableCommand{
		tableID:  tableID,
		waiterID: waiterID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignTableCommand) Validate() error {
	return c.guard.Validate(ErrAssignTableCommandIsNotConstructed)
}

func (c AssignTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c AssignTableCommand) WaiterID() kernel.UUID {
	return c.waiterID
}
