// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, the catalog and the event publisher.
// Adapters under internal/adapters implement them; use cases depend only on them.
package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Dish transitions and order status changes are conditional writes: they only apply
// while the stored row still holds the expected status, so two concurrent callers
// racing on the same dish or order get exactly one winner. The repository never
// rewrites the whole dish list of a stored order.
type OrderRepository interface {
	// Add persists a newly placed order together with its dish line items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with all dish line items.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetOpenByWaiter returns the waiter's orders that are not served yet.
	GetOpenByWaiter(ctx context.Context, waiterID kernel.UUID) ([]*order.Order, error)

	// GetOrderedByWaiterAndTable returns the waiter's orders for one table that are
	// still in the Ordered status.
	GetOrderedByWaiterAndTable(ctx context.Context, waiterID, tableID kernel.UUID) ([]*order.Order, error)

	// GetAllOpen returns every order that is not served yet.
	GetAllOpen(ctx context.Context) ([]*order.Order, error)

	// GetAll returns every order regardless of status.
	GetAll(ctx context.Context) ([]*order.Order, error)

	// ClaimDish moves one dish from Ordered to Preparing, records the kitchen on the
	// dish and as the order's latest kitchen.
	//
	// Errors:
	//   - errs.ObjectNotFoundError if the order or the dish does not exist
	//   - errs.InvalidTransitionError if the dish is no longer in the Ordered status
	ClaimDish(ctx context.Context, orderID, dishID, kitchenID kernel.UUID, at time.Time) error

	// CompleteDish moves one dish from Preparing to Prepared. It also writes the order
	// row, so completions of dishes of one order serialize until the transaction ends
	// and a later read in the same transaction sees every committed dish.
	// Errors mirror ClaimDish.
	CompleteDish(ctx context.Context, orderID, dishID kernel.UUID, at time.Time) error

	// UpdateStatus compares and sets the order-level status. It reports false without
	// an error when the stored status is no longer from, and errs.ObjectNotFoundError
	// when the order does not exist.
	UpdateStatus(ctx context.Context, orderID kernel.UUID, from, to order.Status, at time.Time) (bool, error)
}
