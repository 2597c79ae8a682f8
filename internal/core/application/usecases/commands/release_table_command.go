package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrReleaseTableCommandIsNotConstructed = errors.New(
		"ReleaseTableCommand must be created via NewReleaseTableCommand constructor",
	)
	ErrReleaseTableForOrderCommandIsNotConstructed = errors.New(
		"ReleaseTableForOrderCommand must be created via NewReleaseTableForOrderCommand constructor",
	)
)

// ReleaseTableCommand frees a table regardless of its current binding.
type ReleaseTableCommand struct {
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseTableCommand(tableID kernel.UUID) (ReleaseTableCommand, error) {
	if err := requireID("table id", tableID); err != nil {
		return ReleaseTableCommand{}, err
	}

	return ReleaseTableCommand{
		tableID: tableID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseTableCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTableCommandIsNotConstructed)
}

func (c ReleaseTableCommand) TableID() kernel.UUID {
	return c.tableID
}

// ReleaseTableForOrderCommand frees the table of a paid order. It is built from the
// payment-settled message of the external payment system.
type ReleaseTableForOrderCommand struct {
	orderID kernel.UUID
	tableID kernel.UUID

	guard guard.ConstructorGuard
}

func NewReleaseTableForOrderCommand(orderID, tableID kernel.UUID) (ReleaseTableForOrderCommand, error) {
	if err := errors.Join(
		requireID("order id", orderID),
		requireID("table id", tableID),
	); err != nil {
		return ReleaseTableForOrderCommand{}, err
	}

	return ReleaseTableForOrderCommand{
		orderID: orderID,
		tableID: tableID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ReleaseTableForOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseTableForOrderCommandIsNotConstructed)
}

func (c ReleaseTableForOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ReleaseTableForOrderCommand) TableID() kernel.UUID {
	return c.tableID
}
