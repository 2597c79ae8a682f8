package commands

import (
	"context"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/order"
)

// MarkDishPreparedCommandHandler completes a dish and recomputes the order status in
// the same transaction, so a failure anywhere leaves both the dish and the order as
// they were.
//
// Concurrent completions of different dishes of one order serialize on the order row:
// the storage-level CompleteDish touches it, and the recomputation reads the dish
// snapshot only after that write. The last completion to commit therefore sees every
// dish prepared and moves the order to Prepared exactly once.
type MarkDishPreparedCommandHandler struct {
	uowFactory OrderUoWFactory
	recomputer orderStatusRecomputer
	now        Clock
}

func NewMarkDishPreparedCommandHandler(uowFactory OrderUoWFactory) MarkDishPreparedCommandHandler {
	return MarkDishPreparedCommandHandler{
		uowFactory: uowFactory,
		recomputer: newOrderStatusRecomputer(),
		now:        systemClock,
	}
}

func (h MarkDishPreparedCommandHandler) Handle(
	ctx context.Context,
	command MarkDishPreparedCommand,
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
	if err = o.CompleteDish(command.DishID(), at); err != nil {
		return nil, err
	}

	if err = orders.CompleteDish(ctx, command.OrderID(), command.DishID(), at); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, event.NewDishPrepared(command.OrderID(), command.DishID(), at)); err != nil {
		return nil, err
	}

	o, err = h.recomputer.recompute(ctx, orders, uow, command.OrderID(), at)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
