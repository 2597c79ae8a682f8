package queries

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via one of the NewList*OrdersQuery constructors",
)

// Scope selects which orders ListOrdersQuery returns.
type Scope int

const (
	// ScopeAll is every order regardless of status.
	ScopeAll Scope = iota + 1
	// ScopeOpen is every order that is not served yet.
	ScopeOpen
	// ScopeWaiter is the waiter's orders that are not served yet.
	ScopeWaiter
	// ScopeWaiterTable is the waiter's Ordered orders for one table.
	ScopeWaiterTable
)

// ListOrdersQuery lists orders in one of the supported scopes.
//
// Example:
//
//	query, err := queries.NewListWaiterOrdersQuery(waiterID)
//	if err != nil {
//	    return err
//	}
//	views, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	scope    Scope
	waiterID kernel.UUID
	tableID  kernel.UUID

	guard guard.ConstructorGuard
}

func NewListAllOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{scope: ScopeAll, guard: guard.NewConstructorGuard()}
}

func NewListOpenOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{scope: ScopeOpen, guard: guard.NewConstructorGuard()}
}

func NewListWaiterOrdersQuery(waiterID kernel.UUID) (ListOrdersQuery, error) {
	if err := waiterID.Validate(); err != nil {
		return ListOrdersQuery{}, errs.NewValueIsRequiredErrorWithCause("waiter id", err)
	}

	return ListOrdersQuery{scope: ScopeWaiter, waiterID: waiterID, guard: guard.NewConstructorGuard()}, nil
}

func NewListWaiterTableOrdersQuery(waiterID, tableID kernel.UUID) (ListOrdersQuery, error) {
	if err := errors.Join(
		requiredID("waiter id", waiterID),
		requiredID("table id", tableID),
	); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		scope:    ScopeWaiterTable,
		waiterID: waiterID,
		tableID:  tableID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Scope() Scope {
	return q.scope
}

func (q ListOrdersQuery) WaiterID() kernel.UUID {
	return q.waiterID
}

func (q ListOrdersQuery) TableID() kernel.UUID {
	return q.tableID
}

func requiredID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
