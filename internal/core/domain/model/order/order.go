package order

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrDishesAreRequired is returned when an order is placed without any dish.
	ErrDishesAreRequired = errs.NewValueIsRequiredError("dishes")
)

// Order is the aggregate root of the fulfillment workflow. A waiter places it for a
// table; kitchen actors advance its dish line items independently; the waiter serves it.
//
// Order follows these invariants:
//   - Must carry at least one dish line item with unique ids
//   - Must reference a valid table and waiter
//   - Prepared and Served require every dish to be prepared
//   - Served is reachable from Prepared only
//
// The order-level kitchen reference is a convenience projection of the most recent
// claim; the authoritative kitchen of a dish is Dish.KitchenID.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// tableID is the table the order was placed for
	tableID kernel.UUID

	// waiterID is the waiter who placed the order
	waiterID kernel.UUID

	// kitchenID is the kitchen actor of the latest dish claim (nil until the first claim)
	kitchenID *kernel.UUID

	// dishes are the line items in insertion order
	dishes []*Dish

	// status is the aggregated order-level state
	status Status

	createdAt time.Time
	updatedAt time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder places a new order in Ordered status.
//
// Example:
//
//	qty, _ := kernel.NewQuantity(2)
//	pizza, _ := order.NewDish(kernel.NewUUID(), margheritaID, qty)
//	o, err := order.NewOrder(kernel.NewUUID(), tableID, waiterID, []*order.Dish{pizza}, time.Now())
func NewOrder(
	id kernel.UUID,
	tableID kernel.UUID,
	waiterID kernel.UUID,
	dishes []*Dish,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Ordered,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableID(tableID),
		o.setWaiterID(waiterID),
		o.setDishes(dishes),
	); err != nil {
		return nil, err
	}

	for _, d := range o.dishes {
		if d.Status() != DishOrdered {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"dishes",
				fmt.Errorf("dish %s must be placed in status %s", d.ID(), DishOrdered),
			)
		}
	}

	return o, nil
}

// RestoreOrder rebuilds an order from persistence.
//
// An Ordered order whose dishes are all prepared is accepted: a transaction sees it
// between its last dish write and the aggregation that follows.
func RestoreOrder(
	id kernel.UUID,
	tableID kernel.UUID,
	waiterID kernel.UUID,
	kitchenID *kernel.UUID,
	dishes []*Dish,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setTableID(tableID),
		o.setWaiterID(waiterID),
		o.setDishes(dishes),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if status != Ordered && !o.allDishesPrepared() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("order in status %s must have every dish prepared", status),
		)
	}
	if kitchenID != nil {
		if err := kitchenID.Validate(); err != nil {
			return nil, err
		}
		k := *kitchenID
		o.kitchenID = &k
	}

	o.status = status
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) TableID() kernel.UUID {
	return o.tableID
}

func (o *Order) WaiterID() kernel.UUID {
	return o.waiterID
}

// KitchenID returns the kitchen actor of the most recent dish claim, or nil.
func (o *Order) KitchenID() *kernel.UUID {
	if o.kitchenID == nil {
		return nil
	}
	id := *o.kitchenID
	return &id
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) UpdatedAt() time.Time {
	return o.updatedAt
}

// Dishes returns copies of the line items; mutating them does not affect the order.
func (o *Order) Dishes() []*Dish {
	out := make([]*Dish, len(o.dishes))
	for i, d := range o.dishes {
		out[i] = d.clone()
	}
	return out
}

// DishStatuses returns the status of every line item in insertion order.
func (o *Order) DishStatuses() []DishStatus {
	out := make([]DishStatus, len(o.dishes))
	for i, d := range o.dishes {
		out[i] = d.status
	}
	return out
}

// Dish returns a copy of the line item with the given id.
func (o *Order) Dish(dishID kernel.UUID) (*Dish, error) {
	d, err := o.findDish(dishID)
	if err != nil {
		return nil, err
	}
	return d.clone(), nil
}

// ClaimDish hands one dish over to a kitchen actor and records the kitchen as the
// order's latest one.
func (o *Order) ClaimDish(dishID kernel.UUID, kitchenID kernel.UUID, at time.Time) error {
	d, err := o.findDish(dishID)
	if err != nil {
		return err
	}

	if err = d.Claim(kitchenID); err != nil {
		return err
	}

	o.kitchenID = d.KitchenID()
	o.updatedAt = at
	return nil
}

// CompleteDish marks one dish as prepared. The order-level status is not touched here;
// callers run the aggregation afterwards and apply its result via ApplyAggregatedStatus.
func (o *Order) CompleteDish(dishID kernel.UUID, at time.Time) error {
	d, err := o.findDish(dishID)
	if err != nil {
		return err
	}

	if err = d.Complete(); err != nil {
		return err
	}

	o.updatedAt = at
	return nil
}

// ApplyAggregatedStatus adopts the status computed by the aggregation rule. It reports
// whether the status changed. Only Ordered -> Prepared is a change it may perform.
func (o *Order) ApplyAggregatedStatus(next Status, at time.Time) (bool, error) {
	if next == o.status {
		return false, nil
	}

	prepared, err := o.status.Prepare()
	if err != nil {
		return false, err
	}
	if next != prepared || !o.allDishesPrepared() {
		return false, errs.NewInvalidTransitionError("order", o.status, "move to "+next.String())
	}

	o.status = prepared
	o.updatedAt = at
	return true, nil
}

// Serve marks a prepared order as served.
func (o *Order) Serve(at time.Time) error {
	next, err := o.status.Serve()
	if err != nil {
		return err
	}

	o.status = next
	o.updatedAt = at
	return nil
}

func (o *Order) allDishesPrepared() bool {
	for _, d := range o.dishes {
		if d.status != DishPrepared {
			return false
		}
	}
	return true
}

func (o *Order) findDish(dishID kernel.UUID) (*Dish, error) {
	for _, d := range o.dishes {
		if d.id.IsEqual(dishID) {
			return d, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("dish", dishID.String())
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("table id", err)
	}
	o.tableID = tableID
	return nil
}

func (o *Order) setWaiterID(waiterID kernel.UUID) error {
	if err := waiterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("waiter id", err)
	}
	o.waiterID = waiterID
	return nil
}

func (o *Order) setDishes(dishes []*Dish) error {
	if len(dishes) == 0 {
		return ErrDishesAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(dishes))
	copied := make([]*Dish, 0, len(dishes))
	for _, d := range dishes {
		if err := d.Validate(); err != nil {
			return err
		}
		if _, dup := seen[d.id]; dup {
			return errs.NewValueIsInvalidErrorWithCause("dishes", fmt.Errorf("duplicate dish id %s", d.id))
		}
		seen[d.id] = struct{}{}
		copied = append(copied, d.clone())
	}

	o.dishes = copied
	return nil
}
