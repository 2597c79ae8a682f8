package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// DishStatus is the preparation state of a single dish line item.
//
//	DishOrdered ──claim──> DishPreparing ──complete──> DishPrepared
//
// DishPrepared is terminal. Completing an already prepared dish is rejected rather than
// treated as a no-op, so a retried completion is visible to the caller.
type DishStatus int

const (
	DishUnknown DishStatus = iota
	// DishOrdered is a freshly placed dish waiting for a kitchen actor.
	DishOrdered
	// DishPreparing is a dish claimed by a kitchen actor.
	DishPreparing
	// DishPrepared is a dish ready for service.
	DishPrepared
)

var dishStatusNames = map[DishStatus]string{
	DishOrdered:   "order",
	DishPreparing: "prepare",
	DishPrepared:  "prepared",
}

// ParseDishStatus converts the wire name ("order", "prepare", "prepared") into a DishStatus.
func ParseDishStatus(s string) (DishStatus, error) {
	for status, name := range dishStatusNames {
		if name == s {
			return status, nil
		}
	}
	return DishUnknown, errs.NewValueIsInvalidErrorWithCause("dish status", fmt.Errorf("%q is not a dish status", s))
}

func (s DishStatus) Validate() error {
	if _, ok := dishStatusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("dish status is invalid", fmt.Errorf("%d is not a valid dish status", s))
	}
	return nil
}

func (s DishStatus) String() string {
	if name, ok := dishStatusNames[s]; ok {
		return name
	}
	return "unknown"
}

// Claim transitions DishOrdered -> DishPreparing.
func (s DishStatus) Claim() (DishStatus, error) {
	if s != DishOrdered {
		return DishUnknown, errs.NewInvalidTransitionError("dish", s, "claim")
	}
	return DishPreparing, nil
}

// Complete transitions DishPreparing -> DishPrepared.
func (s DishStatus) Complete() (DishStatus, error) {
	if s != DishPreparing {
		return DishUnknown, errs.NewInvalidTransitionError("dish", s, "complete")
	}
	return DishPrepared, nil
}
