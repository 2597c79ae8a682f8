package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrMarkDishPreparedCommandIsNotConstructed = errors.New(
	"MarkDishPreparedCommand must be created via NewMarkDishPreparedCommand constructor",
)

// MarkDishPreparedCommand is a kitchen actor reporting a claimed dish as done.
type MarkDishPreparedCommand struct {
	orderID kernel.UUID
	dishID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewMarkDishPreparedCommand(orderID, dishID kernel.UUID) (MarkDishPreparedCommand, error) {
	if err := errors.Join(
		requireID("order id", orderID),
		requireID("dish id", dishID),
	); err != nil {
		return MarkDishPreparedCommand{}, err
	}

	return MarkDishPreparedCommand{
		orderID: orderID,
		dishID:  dishID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c MarkDishPreparedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDishPreparedCommandIsNotConstructed)
}

func (c MarkDishPreparedCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkDishPreparedCommand) DishID() kernel.UUID {
	return c.dishID
}
