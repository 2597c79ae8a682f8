package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrCreateTableCommandIsNotConstructed = errors.New(
	"CreateTableCommand must be created via NewCreateTableCommand constructor",
)

// CreateTableCommand registers a dining table. Number and capacity rules live in
// table.NewTable; the command only carries the values.
type CreateTableCommand struct {
	tableID  kernel.UUID
	number   int
	capacity int

	guard guard.ConstructorGuard
}

func NewCreateTableCommand(tableID kernel.UUID, number, capacity int) (CreateTableCommand, error) {
	if err := tableID.Validate(); err != nil {
		return CreateTableCommand{}, err
	}

	return CreateTableCommand{
		tableID:  tableID,
		number:   number,
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTableCommand) Validate() error {
	return c.guard.Validate(ErrCreateTableCommandIsNotConstructed)
}

func (c CreateTableCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c CreateTableCommand) Number() int {
	return c.number
}

func (c CreateTableCommand) Capacity() int {
	return c.capacity
}
