package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// orderStatusRecomputer applies services.OrderAggregator to the dish snapshot visible
// inside the caller's transaction and persists the result with a compare-and-set on
// the order status. It never begins or commits on its own.
type orderStatusRecomputer struct {
	aggregator services.OrderAggregator
}

func newOrderStatusRecomputer() orderStatusRecomputer {
	return orderStatusRecomputer{aggregator: services.NewOrderAggregator()}
}

// recompute re-reads the order, so dish writes made earlier in the same transaction
// are part of the snapshot. Losing the compare-and-set means another writer already
// stored the same result; the stored order is returned without a second event.
func (r orderStatusRecomputer) recompute(
	ctx context.Context,
	orders ports.OrderRepository,
	outbox OutboxRepoFactory,
	orderID kernel.UUID,
	at time.Time,
) (*order.Order, error) {
	o, err := orders.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status()
	changed, err := r.aggregator.Recompute(o, at)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}

	applied, err := orders.UpdateStatus(ctx, o.ID(), from, o.Status(), at)
	if err != nil {
		return nil, err
	}
	if !applied {
		return orders.Get(ctx, o.ID())
	}

	if err = outbox.OutboxRepository().Add(ctx, event.NewOrderStatusChanged(o, from, at)); err != nil {
		return nil, err
	}

	return o, nil
}
