package commands

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
)

// ReleaseTableCommandHandler makes a table Available again. Releasing an Available
// table succeeds without writing anything.
type ReleaseTableCommandHandler struct {
	uowFactory TableUoWFactory
	now        Clock
}

func NewReleaseTableCommandHandler(uowFactory TableUoWFactory) ReleaseTableCommandHandler {
	return ReleaseTableCommandHandler{
		uowFactory: uowFactory,
		now:        systemClock,
	}
}

func (h ReleaseTableCommandHandler) Handle(ctx context.Context, command ReleaseTableCommand) (*table.Table, error) {
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

	tables := uow.TableRepository()

	t, err := tables.Get(ctx, command.TableID())
	if err != nil {
		return nil, err
	}

	if !t.Release() {
		return t, nil
	}

	if err = tables.Update(ctx, t); err != nil {
		return nil, err
	}

	released, err := tables.Get(ctx, t.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, event.NewTableReleased(released, h.now())); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return released, nil
}

// ReleaseTableForOrderCommandHandler handles payment-settled notifications. The table
// in the notification must be the order's table. The table is released only while it
// is still bound to the order's waiter, so redelivered notifications are no-ops.
type ReleaseTableForOrderCommandHandler struct {
	uowFactory UoWFactory
	now        Clock
}

func NewReleaseTableForOrderCommandHandler(uowFactory UoWFactory) ReleaseTableForOrderCommandHandler {
	return ReleaseTableForOrderCommandHandler{
		uowFactory: uowFactory,
		now:        systemClock,
	}
}

func (h ReleaseTableForOrderCommandHandler) Handle(
	ctx context.Context,
	command ReleaseTableForOrderCommand,
) (*table.Table, error) {
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

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.TableID().IsEqual(command.TableID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"table id",
			fmt.Errorf("order %s was placed for table %s", o.ID(), o.TableID()),
		)
	}

	released, err := releaseOrderTable(ctx, uow.TableRepository(), o)
	if err != nil {
		return nil, err
	}
	if released == nil {
		return uow.TableRepository().Get(ctx, command.TableID())
	}

	if err = uow.OutboxRepository().Add(ctx, event.NewTableReleased(released, h.now())); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return released, nil
}
