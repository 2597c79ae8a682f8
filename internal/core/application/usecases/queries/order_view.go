// Package queries contains read operations of the CQRS architecture. Query handlers
// never modify state; they read committed orders and tables and resolve dish line
// items against the catalog for display.
package queries

import (
	"context"
	"log/slog"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
)

// UnknownItemName is displayed for dishes whose catalog item cannot be resolved.
const UnknownItemName = "unknown item"

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	GetOpenByWaiter(ctx context.Context, waiterID kernel.UUID) ([]*order.Order, error)
	GetOrderedByWaiterAndTable(ctx context.Context, waiterID, tableID kernel.UUID) ([]*order.Order, error)
	GetAllOpen(ctx context.Context) ([]*order.Order, error)
	GetAll(ctx context.Context) ([]*order.Order, error)
}

// DishView is a dish line item resolved against the catalog.
type DishView struct {
	ID        kernel.UUID
	ItemID    kernel.UUID
	Name      string
	Quantity  int
	Status    order.DishStatus
	KitchenID *kernel.UUID
	UnitPrice kernel.Money
	LineTotal kernel.Money
}

// OrderView is an order as shown to waiters and kitchens.
type OrderView struct {
	ID        kernel.UUID
	TableID   kernel.UUID
	WaiterID  kernel.UUID
	KitchenID *kernel.UUID
	Status    order.Status
	Dishes    []DishView
	Total     kernel.Money
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderViewer turns order aggregates into OrderView values. Unknown catalog items are
// displayed as UnknownItemName with a zero price instead of failing the read. A failed
// catalog lookup is logged and every item is shown as unknown, so rendering never
// fails a state change that has already been committed.
//
// Example:
//
//	viewer := queries.NewOrderViewer(catalog)
//	view := viewer.View(ctx, placedOrder)
type OrderViewer struct {
	catalog    ports.Catalog
	calculator services.BillCalculator
	logger     *slog.Logger
}

func NewOrderViewer(catalog ports.Catalog) OrderViewer {
	return OrderViewer{
		catalog:    catalog,
		calculator: services.NewBillCalculator(),
		logger:     slog.Default(),
	}
}

func (v OrderViewer) View(ctx context.Context, o *order.Order) OrderView {
	return v.Views(ctx, []*order.Order{o})[0]
}

// Views resolves all orders with a single catalog lookup.
func (v OrderViewer) Views(ctx context.Context, orders []*order.Order) []OrderView {
	seen := make(map[kernel.UUID]struct{})
	ids := make([]kernel.UUID, 0)
	for _, o := range orders {
		for _, d := range o.Dishes() {
			if _, ok := seen[d.ItemID()]; !ok {
				seen[d.ItemID()] = struct{}{}
				ids = append(ids, d.ItemID())
			}
		}
	}

	items := map[kernel.UUID]ports.CatalogItem{}
	if len(ids) > 0 {
		found, err := v.catalog.Lookup(ctx, ids)
		if err != nil {
			v.logger.ErrorContext(ctx, "catalog lookup failed, showing items as unknown",
				slog.Int("items", len(ids)), slog.Any("error", err))
		} else {
			items = found
		}
	}

	prices := make(map[kernel.UUID]kernel.Money, len(items))
	for id, item := range items {
		prices[id] = item.Price
	}

	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, v.view(o, items, prices))
	}
	return views
}

func (v OrderViewer) view(o *order.Order, items map[kernel.UUID]ports.CatalogItem, prices map[kernel.UUID]kernel.Money) OrderView {
	dishes := o.Dishes()
	bill := v.calculator.Calculate(dishes, prices)

	view := OrderView{
		ID:        o.ID(),
		TableID:   o.TableID(),
		WaiterID:  o.WaiterID(),
		KitchenID: o.KitchenID(),
		Status:    o.Status(),
		Dishes:    make([]DishView, 0, len(dishes)),
		Total:     bill.Total,
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}

	for i, d := range dishes {
		name := UnknownItemName
		if item, ok := items[d.ItemID()]; ok {
			name = item.Name
		}
		view.Dishes = append(view.Dishes, DishView{
			ID:        d.ID(),
			ItemID:    d.ItemID(),
			Name:      name,
			Quantity:  d.Quantity().Int(),
			Status:    d.Status(),
			KitchenID: d.KitchenID(),
			UnitPrice: bill.Lines[i].UnitPrice,
			LineTotal: bill.Lines[i].Total,
		})
	}

	return view
}
