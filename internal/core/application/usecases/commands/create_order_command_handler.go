package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. The table must be Assigned to the ordering
// waiter and every dish line must reference a known catalog item; both failures are
// validation errors.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.Catalog
	now        Clock
}

func NewCreateOrderCommandHandler(uowFactory UoWFactory, catalog ports.Catalog) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		now:        systemClock,
	}
}

// Handle validates the catalog references, builds the order with generated dish ids
// and persists it with an order.created event.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	lines := command.Lines()
	if err := h.checkCatalog(ctx, lines); err != nil {
		return nil, err
	}

	dishes := make([]*order.Dish, 0, len(lines))
	for _, l := range lines {
		qty, err := kernel.NewQuantity(l.Quantity)
		if err != nil {
			return nil, err
		}
		d, err := order.NewDish(kernel.NewUUID(), l.ItemID, qty)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, d)
	}

	o, err := order.NewOrder(command.OrderID(), command.TableID(), command.WaiterID(), dishes, h.now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TableRepository().Get(ctx, command.TableID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, errs.NewValueIsInvalidErrorWithCause("table id", err)
	}
	if err != nil {
		return nil, err
	}
	if !t.IsAssignedTo(command.WaiterID()) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"table id",
			fmt.Errorf("table %d is not assigned to waiter %s", t.Number(), command.WaiterID()),
		)
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, event.NewOrderCreated(o)); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func (h CreateOrderCommandHandler) checkCatalog(ctx context.Context, lines []DishLine) error {
	ids := make([]kernel.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ItemID)
	}

	known, err := h.catalog.Lookup(ctx, ids)
	if err != nil {
		return err
	}

	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"dishes",
			fmt.Errorf("unknown catalog items: %s", strings.Join(missing, ", ")),
		)
	}

	return nil
}
