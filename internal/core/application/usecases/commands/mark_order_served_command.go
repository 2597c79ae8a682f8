package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrMarkOrderServedCommandIsNotConstructed = errors.New(
	"MarkOrderServedCommand must be created via NewMarkOrderServedCommand constructor",
)

// MarkOrderServedCommand is the waiter confirming the prepared order reached the table.
type MarkOrderServedCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkOrderServedCommand(orderID kernel.UUID) (MarkOrderServedCommand, error) {
	if err := requireID("order id", orderID); err != nil {
		return MarkOrderServedCommand{}, err
	}

	return MarkOrderServedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkOrderServedCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderServedCommandIsNotConstructed)
}

func (c MarkOrderServedCommand) OrderID() kernel.UUID {
	return c.orderID
}
