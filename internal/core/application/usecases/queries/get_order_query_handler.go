package queries

import (
	"context"

	"restaurant/internal/core/ports"
)

// GetOrderQueryHandler returns a single order view, or errs.ErrObjectNotFound.
type GetOrderQueryHandler struct {
	orders OrderReader
	viewer OrderViewer
}

func NewGetOrderQueryHandler(orders OrderReader, catalog ports.Catalog) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, viewer: NewOrderViewer(catalog)}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, err
	}

	return h.viewer.View(ctx, o), nil
}
