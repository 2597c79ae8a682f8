package commands_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFulfillment_TwoDishOrderFromPlacementToPayment(t *testing.T) {
	r := newRestaurant(t)
	ctx := t.Context()
	tableID, waiterID := r.seat(t, 1)
	kitchenA, kitchenB := kernel.NewUUID(), kernel.NewUUID()

	o := r.place(t, tableID, waiterID,
		commands.DishLine{ItemID: r.pizzaID, Quantity: 2},
		commands.DishLine{ItemID: r.soupID, Quantity: 1},
	)
	dishA, dishB := o.Dishes()[0].ID(), o.Dishes()[1].ID()
	assert.Equal(t, []order.DishStatus{order.DishOrdered, order.DishOrdered}, o.DishStatuses())

	o, err := r.claim(t, o.ID(), dishA, kitchenA)
	require.NoError(t, err)
	assert.Equal(t, []order.DishStatus{order.DishPreparing, order.DishOrdered}, o.DishStatuses())
	assert.Equal(t, order.Ordered, o.Status())

	o, err = r.complete(t, o.ID(), dishA)
	require.NoError(t, err)
	assert.Equal(t, []order.DishStatus{order.DishPrepared, order.DishOrdered}, o.DishStatuses())
	assert.Equal(t, order.Ordered, o.Status(), "dish B is still ordered")

	o, err = r.claim(t, o.ID(), dishB, kitchenB)
	require.NoError(t, err)
	assert.Equal(t, kitchenB, *o.KitchenID(), "order-level kitchen is the latest claim")
	a, _ := o.Dish(dishA)
	assert.Equal(t, kitchenA, *a.KitchenID(), "dish A keeps its own kitchen")

	o, err = r.complete(t, o.ID(), dishB)
	require.NoError(t, err)
	assert.Equal(t, order.Prepared, o.Status())

	o, err = r.serve(t, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Served, o.Status())

	result, err := r.settle(t, o.ID())
	require.NoError(t, err)
	assert.Equal(t, kernel.Money(2*1200+650), result.Payment.Amount())
	assert.Equal(t, kernel.Money(3050), result.Bill.Total)

	freed, err := r.store.TableRepository().Get(ctx, tableID)
	require.NoError(t, err)
	assert.Equal(t, table.Available, freed.Status())
	assert.Nil(t, freed.WaiterID())

	kinds := pendingKinds(t, r)
	assert.Equal(t, []event.Kind{
		event.TableAssigned,
		event.OrderCreated,
		event.DishClaimed,
		event.DishPrepared,
		event.DishClaimed,
		event.DishPrepared,
		event.OrderStatusChanged,
		event.OrderStatusChanged,
		event.PaymentRecorded,
		event.TableReleased,
	}, kinds)
}

func TestFulfillment_CompletingPreparedDishIsRejected(t *testing.T) {
	r := newRestaurant(t)
	tableID, waiterID := r.seat(t, 1)
	o := r.place(t, tableID, waiterID, commands.DishLine{ItemID: r.pizzaID, Quantity: 1})
	dishID := o.Dishes()[0].ID()

	_, err := r.complete(t, o.ID(), dishID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition, "an unclaimed dish cannot be completed")

	_, err = r.claim(t, o.ID(), dishID, kernel.NewUUID())
	require.NoError(t, err)
	_, err = r.complete(t, o.ID(), dishID)
	require.NoError(t, err)

	_, err = r.complete(t, o.ID(), dishID)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

// statusEventFailingUoW fails the outbox write of order status changes, which is the
// last step of completing an order's final dish.
type statusEventFailingUoW struct {
	commands.OrderUoW
}

func (u statusEventFailingUoW) OutboxRepository() ports.OutboxRepository {
	return statusEventFailingOutbox{u.OrderUoW.OutboxRepository()}
}

type statusEventFailingOutbox struct {
	ports.OutboxRepository
}

func (o statusEventFailingOutbox) Add(ctx context.Context, events ...event.Event) error {
	for _, e := range events {
		if e.Kind() == event.OrderStatusChanged {
			return errs.NewStorageError("append outbox", errors.New("connection reset"))
		}
	}
	return o.OutboxRepository.Add(ctx, events...)
}

func TestFulfillment_FailedAggregationLeavesDishRetryable(t *testing.T) {
	r := newRestaurant(t)
	ctx := t.Context()
	tableID, waiterID := r.seat(t, 1)
	o := r.place(t, tableID, waiterID, commands.DishLine{ItemID: r.pizzaID, Quantity: 1})
	dishID := o.Dishes()[0].ID()

	_, err := r.claim(t, o.ID(), dishID, kernel.NewUUID())
	require.NoError(t, err)

	orders := memoryFactories{f: memory.NewUnitOfWorkFactory(r.store)}.orders()
	failing := commands.NewMarkDishPreparedCommandHandler(funcOrderUoWFactory(func() commands.OrderUoW {
		return statusEventFailingUoW{orders.Create()}
	}))
	cmd, err := commands.NewMarkDishPreparedCommand(o.ID(), dishID)
	require.NoError(t, err)

	_, err = failing.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrStorage)

	stored, err := r.store.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Ordered, stored.Status())
	assert.Equal(t, []order.DishStatus{order.DishPreparing}, stored.DishStatuses(), "the dish write is rolled back")

	completed, err := r.complete(t, o.ID(), dishID)
	require.NoError(t, err)
	assert.Equal(t, order.Prepared, completed.Status())

	served, err := r.serve(t, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Served, served.Status())
}

func TestFulfillment_ServeRequiresPreparedOrder(t *testing.T) {
	r := newRestaurant(t)
	tableID, waiterID := r.seat(t, 1)
	o := r.place(t, tableID, waiterID, commands.DishLine{ItemID: r.pizzaID, Quantity: 1})

	_, err := r.serve(t, o.ID())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	dishID := o.Dishes()[0].ID()
	_, err = r.claim(t, o.ID(), dishID, kernel.NewUUID())
	require.NoError(t, err)
	_, err = r.serve(t, o.ID())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = r.complete(t, o.ID(), dishID)
	require.NoError(t, err)
	_, err = r.serve(t, o.ID())
	require.NoError(t, err)

	_, err = r.serve(t, o.ID())
	require.ErrorIs(t, err, errs.ErrInvalidTransition, "served is terminal")

	_, err = r.serve(t, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestFulfillment_ConcurrentClaimsOfOneDish(t *testing.T) {
	r := newRestaurant(t)
	ctx := t.Context()
	tableID, waiterID := r.seat(t, 1)
	o := r.place(t, tableID, waiterID, commands.DishLine{ItemID: r.pizzaID, Quantity: 1})
	dishID := o.Dishes()[0].ID()

	const kitchens = 8
	cmds := make([]commands.AssignDishToKitchenCommand, kitchens)
	for i := range cmds {
		cmd, err := commands.NewAssignDishToKitchenCommand(o.ID(), dishID, kernel.NewUUID())
		require.NoError(t, err)
		cmds[i] = cmd
	}

	var wins, rejected atomic.Int32
	var wg sync.WaitGroup
	for _, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.claimDish.Handle(ctx, cmd)
			switch {
			case err == nil:
				wins.Add(1)
			case assert.ErrorIs(t, err, errs.ErrInvalidTransition):
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(kitchens-1), rejected.Load())

	stored, err := r.store.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, []order.DishStatus{order.DishPreparing}, stored.DishStatuses())
}

func TestFulfillment_ConcurrentCompletionsConverge(t *testing.T) {
	r := newRestaurant(t)
	ctx := t.Context()
	tableID, waiterID := r.seat(t, 1)

	lines := make([]commands.DishLine, 6)
	for i := range lines {
		lines[i] = commands.DishLine{ItemID: r.soupID, Quantity: 1}
	}
	o := r.place(t, tableID, waiterID, lines...)

	cmds := make([]commands.MarkDishPreparedCommand, 0, len(lines))
	for _, d := range o.Dishes() {
		_, err := r.claim(t, o.ID(), d.ID(), kernel.NewUUID())
		require.NoError(t, err)
		cmd, err := commands.NewMarkDishPreparedCommand(o.ID(), d.ID())
		require.NoError(t, err)
		cmds = append(cmds, cmd)
	}

	var wg sync.WaitGroup
	for _, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.completeDish.Handle(ctx, cmd)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, err := r.store.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Prepared, stored.Status())

	changes := 0
	for _, k := range pendingKinds(t, r) {
		if k == event.OrderStatusChanged {
			changes++
		}
	}
	assert.Equal(t, 1, changes, "exactly one completion moves the order to prepared")
}

func TestFulfillment_WaiterHoldsOneTable(t *testing.T) {
	r := newRestaurant(t)
	t1 := r.addTable(t, 1)
	t2 := r.addTable(t, 2)
	w1 := kernel.NewUUID()

	require.NoError(t, r.assign(t, t1, w1))

	err := r.assign(t, t2, w1)
	require.ErrorIs(t, err, errs.ErrConflict)

	err = r.assign(t, t1, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrConflict, "an assigned table cannot be taken over")

	err = r.assign(t, t1, w1)
	require.ErrorIs(t, err, errs.ErrConflict, "reassigning to the same waiter is still a busy table")

	cmd, err := commands.NewReleaseTableCommand(t1)
	require.NoError(t, err)
	_, err = r.releaseTable.Handle(t.Context(), cmd)
	require.NoError(t, err)

	require.NoError(t, r.assign(t, t2, w1))
}

func TestFulfillment_ConcurrentAssignmentOfOneTable(t *testing.T) {
	r := newRestaurant(t)
	ctx := t.Context()
	tableID := r.addTable(t, 7)

	const waiters = 6
	cmds := make([]commands.AssignTableCommand, waiters)
	for i := range cmds {
		cmd, err := commands.NewAssignTableCommand(tableID, kernel.NewUUID())
		require.NoError(t, err)
		cmds[i] = cmd
	}

	var wins atomic.Int32
	var wg sync.WaitGroup
	for _, cmd := range cmds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.assignTable.Handle(ctx, cmd); err == nil {
				wins.Add(1)
			} else {
				assert.ErrorIs(t, err, errs.ErrConflict)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestFulfillment_ReleaseIsIdempotent(t *testing.T) {
	r := newRestaurant(t)
	tableID, _ := r.seat(t, 3)

	cmd, err := commands.NewReleaseTableCommand(tableID)
	require.NoError(t, err)

	first, err := r.releaseTable.Handle(t.Context(), cmd)
	require.NoError(t, err)
	second, err := r.releaseTable.Handle(t.Context(), cmd)
	require.NoError(t, err)

	assert.Equal(t, table.Available, second.Status())
	assert.Equal(t, first.Version(), second.Version(), "a no-op release writes nothing")
}

func TestFulfillment_OrderCreationValidation(t *testing.T) {
	r := newRestaurant(t)
	tableID, waiterID := r.seat(t, 1)
	freeTable := r.addTable(t, 2)

	tests := []struct {
		name     string
		tableID  kernel.UUID
		waiterID kernel.UUID
		itemID   kernel.UUID
	}{
		{"unknown catalog item", tableID, waiterID, kernel.NewUUID()},
		{"table of another waiter", tableID, kernel.NewUUID(), r.pizzaID},
		{"table not assigned", freeTable, waiterID, r.pizzaID},
		{"missing table", kernel.NewUUID(), waiterID, r.pizzaID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tt.tableID, tt.waiterID,
				[]commands.DishLine{{ItemID: tt.itemID, Quantity: 1}})
			require.NoError(t, err)

			o, err := r.createOrder.Handle(t.Context(), cmd)

			require.Error(t, err)
			assert.Nil(t, o)
			assert.True(t, errs.IsValidation(err), "got %v", err)
		})
	}
}

func TestFulfillment_SettlementRules(t *testing.T) {
	r := newRestaurant(t)
	tableID, waiterID := r.seat(t, 1)
	o := r.place(t, tableID, waiterID, commands.DishLine{ItemID: r.pizzaID, Quantity: 1})

	_, err := r.settle(t, o.ID())
	require.ErrorIs(t, err, errs.ErrInvalidTransition, "an order is paid after it was served")

	dishID := o.Dishes()[0].ID()
	_, err = r.claim(t, o.ID(), dishID, kernel.NewUUID())
	require.NoError(t, err)
	_, err = r.complete(t, o.ID(), dishID)
	require.NoError(t, err)
	_, err = r.serve(t, o.ID())
	require.NoError(t, err)

	_, err = r.settle(t, o.ID())
	require.NoError(t, err)

	_, err = r.settle(t, o.ID())
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestFulfillment_ReleaseTableForOrder(t *testing.T) {
	r := newRestaurant(t)
	ctx := t.Context()
	tableID, waiterID := r.seat(t, 1)
	otherTable, _ := r.seat(t, 2)
	o := r.place(t, tableID, waiterID, commands.DishLine{ItemID: r.soupID, Quantity: 1})

	mismatch, err := commands.NewReleaseTableForOrderCommand(o.ID(), otherTable)
	require.NoError(t, err)
	_, err = r.releaseForOrder.Handle(ctx, mismatch)
	require.True(t, errs.IsValidation(err))

	cmd, err := commands.NewReleaseTableForOrderCommand(o.ID(), tableID)
	require.NoError(t, err)

	released, err := r.releaseForOrder.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, table.Available, released.Status())

	again, err := r.releaseForOrder.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, released.Version(), again.Version())
}

func pendingKinds(t *testing.T, r *restaurant) []event.Kind {
	t.Helper()

	pending, err := r.store.OutboxRepository().GetPending(t.Context(), 1000)
	require.NoError(t, err)

	kinds := make([]event.Kind, 0, len(pending))
	for _, e := range pending {
		kinds = append(kinds, e.Kind())
	}
	return kinds
}
