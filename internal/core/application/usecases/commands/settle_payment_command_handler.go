package commands

import (
	"context"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/payment"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/domain/services"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// SettlePaymentResult is the settled order with its payment and priced bill.
type SettlePaymentResult struct {
	Order   *order.Order
	Payment *payment.Payment
	Bill    services.Bill
}

// SettlePaymentCommandHandler records the payment of a served order and releases its
// table in one transaction. A second settlement of the same order fails with
// errs.ErrConflict and changes nothing.
type SettlePaymentCommandHandler struct {
	uowFactory UoWFactory
	catalog    ports.Catalog
	calculator services.BillCalculator
	now        Clock
}

func NewSettlePaymentCommandHandler(uowFactory UoWFactory, catalog ports.Catalog) SettlePaymentCommandHandler {
	return SettlePaymentCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
		calculator: services.NewBillCalculator(),
		now:        systemClock,
	}
}

func (h SettlePaymentCommandHandler) Handle(ctx context.Context, command SettlePaymentCommand) (SettlePaymentResult, error) {
	if err := command.Validate(); err != nil {
		return SettlePaymentResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SettlePaymentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return SettlePaymentResult{}, err
	}
	if o.Status() != order.Served {
		return SettlePaymentResult{}, errs.NewInvalidTransitionError("order", o.Status(), "settle payment for")
	}

	bill, err := h.priceOrder(ctx, o)
	if err != nil {
		return SettlePaymentResult{}, err
	}

	at := h.now()
	p, err := payment.NewPayment(kernel.NewUUID(), o.ID(), o.TableID(), bill.Total, command.Method(), at)
	if err != nil {
		return SettlePaymentResult{}, err
	}

	if err = uow.PaymentRepository().Add(ctx, p); err != nil {
		return SettlePaymentResult{}, err
	}

	events := []event.Event{
		event.NewPaymentRecorded(p.ID(), o.ID(), o.TableID(), p.Amount(), p.Method().String(), at),
	}

	released, err := releaseOrderTable(ctx, uow.TableRepository(), o)
	if err != nil {
		return SettlePaymentResult{}, err
	}
	if released != nil {
		events = append(events, event.NewTableReleased(released, at))
	}

	if err = uow.OutboxRepository().Add(ctx, events...); err != nil {
		return SettlePaymentResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SettlePaymentResult{}, err
	}

	return SettlePaymentResult{Order: o, Payment: p, Bill: bill}, nil
}

func (h SettlePaymentCommandHandler) priceOrder(ctx context.Context, o *order.Order) (services.Bill, error) {
	dishes := o.Dishes()
	ids := make([]kernel.UUID, 0, len(dishes))
	for _, d := range dishes {
		ids = append(ids, d.ItemID())
	}

	items, err := h.catalog.Lookup(ctx, ids)
	if err != nil {
		return services.Bill{}, err
	}

	prices := make(map[kernel.UUID]kernel.Money, len(items))
	for id, item := range items {
		prices[id] = item.Price
	}

	return h.calculator.Calculate(dishes, prices), nil
}

// releaseOrderTable frees the order's table if it is still bound to the order's
// waiter. It returns the released table, or nil when there was nothing to release.
func releaseOrderTable(ctx context.Context, tables ports.TableRepository, o *order.Order) (*table.Table, error) {
	t, err := tables.Get(ctx, o.TableID())
	if err != nil {
		return nil, err
	}

	if !t.IsAssignedTo(o.WaiterID()) {
		return nil, nil
	}

	t.Release()
	if err = tables.Update(ctx, t); err != nil {
		return nil, err
	}

	return tables.Get(ctx, t.ID())
}
