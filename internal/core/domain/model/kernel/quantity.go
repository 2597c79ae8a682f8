package kernel

import (
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// QuantityMin is the smallest number of portions a dish line item may carry.
const QuantityMin = 1

var ErrQuantityIsNotConstructed = errs.NewValueIsRequiredError("quantity must be created via NewQuantity")

// Quantity is the number of portions of one catalog item on an order.
type Quantity struct {
	value int
	guard guard.ConstructorGuard
}

// NewQuantity validates that value is at least QuantityMin.
func NewQuantity(value int) (Quantity, error) {
	if value < QuantityMin {
		return Quantity{}, errs.NewValueIsOutOfRangeError("quantity", value, QuantityMin, "unbounded")
	}
	return Quantity{value: value, guard: guard.NewConstructorGuard()}, nil
}

func (q Quantity) Int() int {
	return q.value
}

func (q Quantity) Validate() error {
	return q.guard.Validate(ErrQuantityIsNotConstructed)
}
