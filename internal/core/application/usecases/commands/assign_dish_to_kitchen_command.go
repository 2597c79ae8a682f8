package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrAssignDishToKitchenCommandIsNotConstructed = errors.New(
	"AssignDishToKitchenCommand must be created via NewAssignDishToKitchenCommand constructor",
)

// AssignDishToKitchenCommand is a kitchen actor claiming one dish of an order.
type AssignDishToKitchenCommand struct {
	orderID   kernel.UUID
	dishID    kernel.UUID
	kitchenID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignDishToKitchenCommand(orderID, dishID, kitchenID kernel.UUID) (AssignDishToKitchenCommand, error) {
	if err := errors.Join(
		requireID("order id", orderID),
		requireID("dish id", dishID),
		requireID("kitchen id", kitchenID),
	); err != nil {
		return AssignDishToKitchenCommand{}, err
	}

	return AssignDishToKitchenCommand{
		orderID:   orderID,
		dishID:    dishID,
		kitchenID: kitchenID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDishToKitchenCommand) Validate() error {
	return c.guard.Validate(ErrAssignDishToKitchenCommandIsNotConstructed)
}

func (c AssignDishToKitchenCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignDishToKitchenCommand) DishID() kernel.UUID {
	return c.dishID
}

func (c AssignDishToKitchenCommand) KitchenID() kernel.UUID {
	return c.kitchenID
}

func requireID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
