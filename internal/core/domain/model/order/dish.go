package order

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish or RestoreDish constructor")

// Dish is a line item of an order: a quantity of one catalog item with its own
// preparation status. Its identity is scoped to the parent order and it is never moved
// between orders.
//
// The kitchen actor that claimed the dish is recorded on the dish itself, so two
// kitchens working on the same order do not overwrite each other.
type Dish struct {
	id        kernel.UUID
	itemID    kernel.UUID
	quantity  kernel.Quantity
	status    DishStatus
	kitchenID *kernel.UUID
	guard     guard.ConstructorGuard
}

// NewDish creates a freshly placed dish line item in DishOrdered status.
func NewDish(id kernel.UUID, itemID kernel.UUID, quantity kernel.Quantity) (*Dish, error) {
	d := &Dish{
		status: DishOrdered,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setItemID(itemID),
		d.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDish rebuilds a dish line item from persistence. A kitchen reference is
// required for claimed dishes and forbidden for dishes that were never claimed.
func RestoreDish(
	id kernel.UUID,
	itemID kernel.UUID,
	quantity kernel.Quantity,
	status DishStatus,
	kitchenID *kernel.UUID,
) (*Dish, error) {
	d := &Dish{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setItemID(itemID),
		d.setQuantity(quantity),
		d.setStatus(status, kitchenID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

func (d *Dish) Validate() error {
	if d == nil {
		return ErrDishIsNotConstructed
	}
	return d.guard.Validate(ErrDishIsNotConstructed)
}

func (d *Dish) ID() kernel.UUID {
	return d.id
}

// ItemID references the catalog item this line item was ordered from.
func (d *Dish) ItemID() kernel.UUID {
	return d.itemID
}

func (d *Dish) Quantity() kernel.Quantity {
	return d.quantity
}

func (d *Dish) Status() DishStatus {
	return d.status
}

// KitchenID returns the kitchen actor that claimed the dish, or nil if unclaimed.
func (d *Dish) KitchenID() *kernel.UUID {
	if d.kitchenID == nil {
		return nil
	}
	id := *d.kitchenID
	return &id
}

// Claim moves the dish into preparation by the given kitchen actor.
func (d *Dish) Claim(kitchenID kernel.UUID) error {
	if err := kitchenID.Validate(); err != nil {
		return err
	}

	next, err := d.status.Claim()
	if err != nil {
		return err
	}

	d.status = next
	d.kitchenID = &kitchenID
	return nil
}

// Complete marks a dish under preparation as prepared.
func (d *Dish) Complete() error {
	next, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

func (d *Dish) clone() *Dish {
	c := *d
	c.kitchenID = d.KitchenID()
	return &c
}

func (d *Dish) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Dish) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("item id", err)
	}
	d.itemID = itemID
	return nil
}

func (d *Dish) setQuantity(quantity kernel.Quantity) error {
	if err := quantity.Validate(); err != nil {
		return err
	}
	d.quantity = quantity
	return nil
}

func (d *Dish) setStatus(status DishStatus, kitchenID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}

	claimed := status == DishPreparing || status == DishPrepared
	if claimed && kitchenID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"kitchen id",
			fmt.Errorf("dish in status %s must have a kitchen", status),
		)
	}
	if !claimed && kitchenID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"kitchen id",
			fmt.Errorf("dish in status %s cannot have a kitchen", status),
		)
	}
	if kitchenID != nil {
		if err := kitchenID.Validate(); err != nil {
			return err
		}
		id := *kitchenID
		d.kitchenID = &id
	}

	d.status = status
	return nil
}
