package queries

import (
	"context"
	"fmt"

	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
)

// ListOrdersQueryHandler returns order views in storage order for the query's scope.
// An empty result is an empty slice, never an error.
type ListOrdersQueryHandler struct {
	orders OrderReader
	viewer OrderViewer
}

func NewListOrdersQueryHandler(orders OrderReader, catalog ports.Catalog) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{orders: orders, viewer: NewOrderViewer(catalog)}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var (
		orders []*order.Order
		err    error
	)
	switch query.Scope() {
	case ScopeAll:
		orders, err = h.orders.GetAll(ctx)
	case ScopeOpen:
		orders, err = h.orders.GetAllOpen(ctx)
	case ScopeWaiter:
		orders, err = h.orders.GetOpenByWaiter(ctx, query.WaiterID())
	case ScopeWaiterTable:
		orders, err = h.orders.GetOrderedByWaiterAndTable(ctx, query.WaiterID(), query.TableID())
	default:
		return nil, fmt.Errorf("unsupported order scope %d", query.Scope())
	}
	if err != nil {
		return nil, err
	}

	return h.viewer.Views(ctx, orders), nil
}
