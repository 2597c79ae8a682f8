package memory

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// OrderRepository implements ports.OrderRepository over the store state.
type OrderRepository struct {
	repo
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec := orderFromDomain(aggregate)
	return r.with(ctx, func(st *state) error {
		if _, exists := st.orders[rec.id]; exists {
			return errs.NewConflictError("order", rec.id.String(), "already exists")
		}
		st.orders[rec.id] = rec
		st.orderIDs = append(st.orderIDs, rec.id)
		return nil
	})
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var out *order.Order
	err := r.with(ctx, func(st *state) error {
		rec, ok := st.orders[id]
		if !ok {
			return errs.NewObjectNotFoundError("order", id.String())
		}
		o, err := orderToDomain(rec)
		out = o
		return err
	})
	return out, err
}

func (r *OrderRepository) GetOpenByWaiter(ctx context.Context, waiterID kernel.UUID) ([]*order.Order, error) {
	return r.find(ctx, func(rec orderRecord) bool {
		return rec.waiterID.IsEqual(waiterID) && rec.status != order.Served
	})
}

func (r *OrderRepository) GetOrderedByWaiterAndTable(
	ctx context.Context,
	waiterID, tableID kernel.UUID,
) ([]*order.Order, error) {
	return r.find(ctx, func(rec orderRecord) bool {
		return rec.waiterID.IsEqual(waiterID) && rec.tableID.IsEqual(tableID) && rec.status == order.Ordered
	})
}

func (r *OrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, func(rec orderRecord) bool {
		return rec.status != order.Served
	})
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, func(orderRecord) bool { return true })
}

func (r *OrderRepository) ClaimDish(ctx context.Context, orderID, dishID, kitchenID kernel.UUID, at time.Time) error {
	return r.updateDish(ctx, orderID, dishID, order.DishOrdered, "claim", func(rec *orderRecord, d *dishRecord) {
		k := kitchenID
		d.status = order.DishPreparing
		d.kitchenID = &k
		rec.kitchenID = &k
		rec.updatedAt = at
	})
}

func (r *OrderRepository) CompleteDish(ctx context.Context, orderID, dishID kernel.UUID, at time.Time) error {
	return r.updateDish(ctx, orderID, dishID, order.DishPreparing, "complete", func(rec *orderRecord, d *dishRecord) {
		d.status = order.DishPrepared
		rec.updatedAt = at
	})
}

func (r *OrderRepository) UpdateStatus(
	ctx context.Context,
	orderID kernel.UUID,
	from, to order.Status,
	at time.Time,
) (bool, error) {
	applied := false
	err := r.with(ctx, func(st *state) error {
		rec, ok := st.orders[orderID]
		if !ok {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		if rec.status != from {
			return nil
		}
		rec.status = to
		rec.updatedAt = at
		st.orders[orderID] = rec
		applied = true
		return nil
	})
	return applied, err
}

// updateDish applies mutate to one dish while it is in the expected status.
func (r *OrderRepository) updateDish(
	ctx context.Context,
	orderID, dishID kernel.UUID,
	expected order.DishStatus,
	action string,
	mutate func(rec *orderRecord, d *dishRecord),
) error {
	return r.with(ctx, func(st *state) error {
		rec, ok := st.orders[orderID]
		if !ok {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}

		for i := range rec.dishes {
			d := &rec.dishes[i]
			if !d.id.IsEqual(dishID) {
				continue
			}
			if d.status != expected {
				return errs.NewInvalidTransitionError("dish", d.status, action)
			}
			mutate(&rec, d)
			st.orders[orderID] = rec
			return nil
		}

		return errs.NewObjectNotFoundError("dish", dishID.String())
	})
}

func (r *OrderRepository) find(ctx context.Context, match func(orderRecord) bool) ([]*order.Order, error) {
	orders := make([]*order.Order, 0)
	err := r.with(ctx, func(st *state) error {
		for _, id := range st.orderIDs {
			rec := st.orders[id]
			if !match(rec) {
				continue
			}
			o, err := orderToDomain(rec)
			if err != nil {
				return err
			}
			orders = append(orders, o)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func orderFromDomain(o *order.Order) orderRecord {
	dishes := o.Dishes()
	rec := orderRecord{
		id:        o.ID(),
		tableID:   o.TableID(),
		waiterID:  o.WaiterID(),
		kitchenID: o.KitchenID(),
		status:    o.Status(),
		createdAt: o.CreatedAt(),
		updatedAt: o.UpdatedAt(),
		dishes:    make([]dishRecord, 0, len(dishes)),
	}
	for _, d := range dishes {
		rec.dishes = append(rec.dishes, dishRecord{
			id:        d.ID(),
			itemID:    d.ItemID(),
			quantity:  d.Quantity().Int(),
			status:    d.Status(),
			kitchenID: d.KitchenID(),
		})
	}
	return rec
}

func orderToDomain(rec orderRecord) (*order.Order, error) {
	dishes := make([]*order.Dish, 0, len(rec.dishes))
	for _, d := range rec.dishes {
		qty, err := kernel.NewQuantity(d.quantity)
		if err != nil {
			return nil, err
		}
		dish, err := order.RestoreDish(d.id, d.itemID, qty, d.status, d.kitchenID)
		if err != nil {
			return nil, err
		}
		dishes = append(dishes, dish)
	}

	return order.RestoreOrder(
		rec.id,
		rec.tableID,
		rec.waiterID,
		rec.kitchenID,
		dishes,
		rec.status,
		rec.createdAt,
		rec.updatedAt,
	)
}
