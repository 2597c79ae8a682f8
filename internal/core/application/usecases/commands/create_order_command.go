package commands

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// DishLine is one requested menu item and how many portions of it.
type DishLine struct {
	ItemID   kernel.UUID
	Quantity int
}

// CreateOrderCommand represents a waiter placing an order for a seated table.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), tableID, waiterID, []DishLine{
//	    {ItemID: margheritaID, Quantity: 2},
//	    {ItemID: tiramisuID, Quantity: 1},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	tableID  kernel.UUID
	waiterID kernel.UUID
	lines    []DishLine

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the identifiers and the dish lines: at least one
// line, each with a catalog item and a quantity of at least kernel.QuantityMin.
// Whether the items exist in the catalog is checked by the handler.
func NewCreateOrderCommand(orderID, tableID, waiterID kernel.UUID, lines []DishLine) (CreateOrderCommand, error) {
	c := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setTableID(tableID),
		c.setWaiterID(waiterID),
		c.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return c, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) TableID() kernel.UUID {
	return c.tableID
}

func (c CreateOrderCommand) WaiterID() kernel.UUID {
	return c.waiterID
}

// Lines returns a copy of the requested dish lines.
func (c CreateOrderCommand) Lines() []DishLine {
	return append([]DishLine(nil), c.lines...)
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTableID(tableID kernel.UUID) error {
	if err := tableID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("table id", err)
	}

	c.tableID = tableID
	return nil
}

func (c *CreateOrderCommand) setWaiterID(waiterID kernel.UUID) error {
	if err := waiterID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("waiter id", err)
	}

	c.waiterID = waiterID
	return nil
}

func (c *CreateOrderCommand) setLines(lines []DishLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("dishes")
	}

	for i, l := range lines {
		if err := l.ItemID.Validate(); err != nil {
			return errs.NewValueIsRequiredErrorWithCause(fmt.Sprintf("dishes[%d].item id", i), err)
		}
		if _, err := kernel.NewQuantity(l.Quantity); err != nil {
			return err
		}
	}

	c.lines = append([]DishLine(nil), lines...)
	return nil
}
