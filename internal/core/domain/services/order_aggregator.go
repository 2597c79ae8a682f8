package services

import (
	"time"

	"restaurant/internal/core/domain/model/order"
)

// OrderAggregator is the single home of the aggregation rule:
//
//	order status = Prepared  iff  every dish is prepared and the order is not Served
//
// Aggregate is a pure function of its inputs. It is commutative over the dish
// statuses, so completions arriving in any order converge to the same result, and it
// is idempotent, so concurrent or repeated recomputations agree.
//
// Example:
//
//	aggregator := services.NewOrderAggregator()
//	next := aggregator.Aggregate(o.Status(), o.DishStatuses())
type OrderAggregator struct{}

func NewOrderAggregator() OrderAggregator {
	return OrderAggregator{}
}

// Aggregate returns the order status implied by current and the dish statuses.
// Served is terminal and is returned unchanged.
func (OrderAggregator) Aggregate(current order.Status, dishes []order.DishStatus) order.Status {
	if current == order.Served {
		return order.Served
	}
	if len(dishes) == 0 {
		return current
	}

	for _, s := range dishes {
		if s != order.DishPrepared {
			return order.Ordered
		}
	}
	return order.Prepared
}

// Recompute runs the rule over the order's current dish snapshot and applies the
// result. It reports whether the order-level status changed.
func (a OrderAggregator) Recompute(o *order.Order, at time.Time) (bool, error) {
	if err := o.Validate(); err != nil {
		return false, err
	}

	return o.ApplyAggregatedStatus(a.Aggregate(o.Status(), o.DishStatuses()), at)
}
