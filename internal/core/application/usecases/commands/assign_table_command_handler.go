package commands

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"
)

// AssignTableCommandHandler binds an Available table to a waiter.
//
// The waiter must not hold another Assigned table and the table must be Available;
// both cases are errs.ErrConflict. The write is a compare-and-set on the table
// version, so of two concurrent assignments of one table exactly one succeeds.
type AssignTableCommandHandler struct {
	uowFactory TableUoWFactory
	now        Clock
}

func NewAssignTableCommandHandler(uowFactory TableUoWFactory) AssignTableCommandHandler {
	return AssignTableCommandHandler{
		uowFactory: uowFactory,
		now:        systemClock,
	}
}

func (h AssignTableCommandHandler) Handle(ctx context.Context, command AssignTableCommand) (*table.Table, error) {
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

	held, err := tables.GetAssignedToWaiter(ctx, command.WaiterID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
	case err != nil:
		return nil, err
	case !held.ID().IsEqual(t.ID()):
		return nil, errs.NewConflictError(
			"waiter",
			command.WaiterID().String(),
			fmt.Sprintf("already assigned to table %d", held.Number()),
		)
	}

	if err = t.Assign(command.WaiterID()); err != nil {
		return nil, err
	}

	if err = tables.Update(ctx, t); err != nil {
		return nil, err
	}

	assigned, err := tables.Get(ctx, t.ID())
	if err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, event.NewTableAssigned(assigned, h.now())); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assigned, nil
}
