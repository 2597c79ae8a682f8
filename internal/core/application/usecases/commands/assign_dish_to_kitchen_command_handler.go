package commands

import (
	"context"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/order"
)

// AssignDishToKitchenCommandHandler hands a dish over to a kitchen actor.
//
// The transition is checked against the loaded order first, then written with a
// conditional update that only matches while the stored dish is still Ordered. Of two
// kitchens claiming the same dish concurrently, one gets the updated order and the
// other errs.ErrInvalidTransition.
type AssignDishToKitchenCommandHandler struct {
	uowFactory OrderUoWFactory
	now        Clock
}

func NewAssignDishToKitchenCommandHandler(uowFactory OrderUoWFactory) AssignDishToKitchenCommandHandler {
	return AssignDishToKitchenCommandHandler{
		uowFactory: uowFactory,
		now:        systemClock,
	}
}

func (h AssignDishToKitchenCommandHandler) Handle(
	ctx context.Context,
	command AssignDishToKitchenCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()

	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	at := h.now()
	if err = o.ClaimDish(command.DishID(), command.KitchenID(), at); err != nil {
		return nil, err
	}

	if err = orders.ClaimDish(ctx, command.OrderID(), command.DishID(), command.KitchenID(), at); err != nil {
		return nil, err
	}

	claimed := event.NewDishClaimed(command.OrderID(), command.DishID(), command.KitchenID(), at)
	if err = uow.OutboxRepository().Add(ctx, claimed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
