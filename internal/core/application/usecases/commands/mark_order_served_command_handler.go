package commands

import (
	"context"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// MarkOrderServedCommandHandler moves a Prepared order to Served. Any other starting
// status is an errs.ErrInvalidTransition, including a concurrent serve that won.
type MarkOrderServedCommandHandler struct {
	uowFactory OrderUoWFactory
	now        Clock
}

func NewMarkOrderServedCommandHandler(uowFactory OrderUoWFactory) MarkOrderServedCommandHandler {
	return MarkOrderServedCommandHandler{
		uowFactory: uowFactory,
		now:        systemClock,
	}
}

func (h MarkOrderServedCommandHandler) Handle(ctx context.Context, command MarkOrderServedCommand) (*order.Order, error) {
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

	from := o.Status()
	at := h.now()
	if err = o.Serve(at); err != nil {
		return nil, err
	}

	applied, err := orders.UpdateStatus(ctx, o.ID(), from, o.Status(), at)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, errs.NewInvalidTransitionError("order", order.Served, "serve")
	}

	if err = uow.OutboxRepository().Add(ctx, event.NewOrderStatusChanged(o, from, at)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
