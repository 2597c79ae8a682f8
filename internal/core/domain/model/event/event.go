// Package event defines the domain events emitted by fulfillment state changes. Command
// handlers append them to the outbox inside the same unit of work as the change itself;
// the outbox relay job publishes them afterwards.
package event

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
)

// Kind names an event type. It doubles as the routing key on the message bus.
type Kind string

const (
	OrderCreated       Kind = "order.created"
	DishClaimed        Kind = "dish.claimed"
	DishPrepared       Kind = "dish.prepared"
	OrderStatusChanged Kind = "order.status_changed"
	TableAssigned      Kind = "table.assigned"
	TableReleased      Kind = "table.released"
	PaymentRecorded    Kind = "payment.recorded"
)

// Event is an immutable fact about an aggregate.
type Event struct {
	id          kernel.UUID
	kind        Kind
	aggregateID kernel.UUID
	occurredAt  time.Time
	payload     any
}

// Restore rebuilds an event read back from the outbox; payload is usually the stored
// json.RawMessage.
func Restore(id kernel.UUID, kind Kind, aggregateID kernel.UUID, occurredAt time.Time, payload any) Event {
	return Event{id: id, kind: kind, aggregateID: aggregateID, occurredAt: occurredAt, payload: payload}
}

func newEvent(kind Kind, aggregateID kernel.UUID, at time.Time, payload any) Event {
	return Restore(kernel.NewUUID(), kind, aggregateID, at, payload)
}

func (e Event) ID() kernel.UUID { return e.id }
func (e Event) Kind() Kind { return e.kind }
func (e Event) AggregateID() kernel.UUID { return e.aggregateID }
func (e Event) OccurredAt() time.Time { return e.occurredAt }
func (e Event) Payload() any { return e.payload }

type DishPayload struct {
	DishID   string `json:"dish_id"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

type OrderCreatedPayload struct {
	OrderID  string        `json:"order_id"`
	TableID  string        `json:"table_id"`
	WaiterID string        `json:"waiter_id"`
	Dishes   []DishPayload `json:"dishes"`
}

type DishClaimedPayload struct {
	OrderID   string `json:"order_id"`
	DishID    string `json:"dish_id"`
	KitchenID string `json:"kitchen_id"`
}

type DishPreparedPayload struct {
	OrderID string `json:"order_id"`
	DishID  string `json:"dish_id"`
}

type OrderStatusChangedPayload struct {
	OrderID  string `json:"order_id"`
	TableID  string `json:"table_id"`
	WaiterID string `json:"waiter_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type TablePayload struct {
	TableID  string `json:"table_id"`
	Number   int    `json:"number"`
	WaiterID string `json:"waiter_id,omitempty"`
}

type PaymentRecordedPayload struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
	TableID   string `json:"table_id"`
	Amount    int64  `json:"amount"`
	Method    string `json:"method"`
}

func NewOrderCreated(o *order.Order) Event {
	dishes := make([]DishPayload, 0, len(o.Dishes()))
	for _, d := range o.Dishes() {
		dishes = append(dishes, DishPayload{
			DishID:   d.ID().String(),
			ItemID:   d.ItemID().String(),
			Quantity: d.Quantity().Int(),
		})
	}

	return newEvent(OrderCreated, o.ID(), o.CreatedAt(), OrderCreatedPayload{
		OrderID:  o.ID().String(),
		TableID:  o.TableID().String(),
		WaiterID: o.WaiterID().String(),
		Dishes:   dishes,
	})
}

func NewDishClaimed(orderID, dishID, kitchenID kernel.UUID, at time.Time) Event {
	return newEvent(DishClaimed, orderID, at, DishClaimedPayload{
		OrderID:   orderID.String(),
		DishID:    dishID.String(),
		KitchenID: kitchenID.String(),
	})
}

func NewDishPrepared(orderID, dishID kernel.UUID, at time.Time) Event {
	return newEvent(DishPrepared, orderID, at, DishPreparedPayload{
		OrderID: orderID.String(),
		DishID:  dishID.String(),
	})
}

func NewOrderStatusChanged(o *order.Order, from order.Status, at time.Time) Event {
	return newEvent(OrderStatusChanged, o.ID(), at, OrderStatusChangedPayload{
		OrderID:  o.ID().String(),
		TableID:  o.TableID().String(),
		WaiterID: o.WaiterID().String(),
		From:     from.String(),
		To:       o.Status().String(),
	})
}

func NewTableAssigned(t *table.Table, at time.Time) Event {
	payload := TablePayload{TableID: t.ID().String(), Number: t.Number()}
	if w := t.WaiterID(); w != nil {
		payload.WaiterID = w.String()
	}
	return newEvent(TableAssigned, t.ID(), at, payload)
}

func NewTableReleased(t *table.Table, at time.Time) Event {
	return newEvent(TableReleased, t.ID(), at, TablePayload{TableID: t.ID().String(), Number: t.Number()})
}

func NewPaymentRecorded(paymentID, orderID, tableID kernel.UUID, amount kernel.Money, method string, at time.Time) Event {
	return newEvent(PaymentRecorded, orderID, at, PaymentRecordedPayload{
		PaymentID: paymentID.String(),
		OrderID:   orderID.String(),
		TableID:   tableID.String(),
		Amount:    int64(amount),
		Method:    method,
	})
}
