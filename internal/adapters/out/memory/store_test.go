package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/payment"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, dishes int) *order.Order {
	t.Helper()

	qty, err := kernel.NewQuantity(1)
	require.NoError(t, err)

	items := make([]*order.Dish, 0, dishes)
	for range dishes {
		d, dErr := order.NewDish(kernel.NewUUID(), kernel.NewUUID(), qty)
		require.NoError(t, dErr)
		items = append(items, d)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), items, time.Now())
	require.NoError(t, err)
	return o
}

func TestUnitOfWork_CommitPublishesChanges(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	o := newTestOrder(t, 1)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))

	blocked, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err := store.OrderRepository().Get(blocked, o.ID())
	require.ErrorIs(t, err, context.DeadlineExceeded, "the store is held until commit")

	require.NoError(t, uow.Commit(ctx))

	stored, err := store.OrderRepository().Get(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, stored.IsEqual(o))
}

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	uow := memory.NewUnitOfWorkFactory(store).Create()
	o := newTestOrder(t, 1)

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.OutboxRepository().Add(ctx, event.NewOrderCreated(o)))
	require.NoError(t, uow.Rollback(ctx))

	_, err := store.OrderRepository().Get(ctx, o.ID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	pending, err := store.OutboxRepository().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)
}

func TestOrderRepository_DishTransitionsAreConditional(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().OrderRepository()
	o := newTestOrder(t, 2)
	require.NoError(t, repo.Add(ctx, o))
	dishID := o.Dishes()[0].ID()
	kitchenID := kernel.NewUUID()
	now := time.Now()

	require.NoError(t, repo.ClaimDish(ctx, o.ID(), dishID, kitchenID, now))

	err := repo.ClaimDish(ctx, o.ID(), dishID, kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	err = repo.CompleteDish(ctx, o.ID(), o.Dishes()[1].ID(), now)
	require.ErrorIs(t, err, errs.ErrInvalidTransition, "an unclaimed dish cannot be completed")

	require.NoError(t, repo.CompleteDish(ctx, o.ID(), dishID, now))

	stored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	dish, err := stored.Dish(dishID)
	require.NoError(t, err)
	assert.Equal(t, order.DishPrepared, dish.Status())
	assert.Equal(t, kitchenID, *dish.KitchenID())
	assert.Equal(t, kitchenID, *stored.KitchenID())

	require.ErrorIs(t, repo.ClaimDish(ctx, kernel.NewUUID(), dishID, kitchenID, now), errs.ErrObjectNotFound)
	require.ErrorIs(t, repo.ClaimDish(ctx, o.ID(), kernel.NewUUID(), kitchenID, now), errs.ErrObjectNotFound)
}

func TestOrderRepository_ConcurrentClaimHasOneWinner(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().OrderRepository()
	o := newTestOrder(t, 1)
	require.NoError(t, repo.Add(ctx, o))
	dishID := o.Dishes()[0].ID()

	var wins, losses atomic.Int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.ClaimDish(ctx, o.ID(), dishID, kernel.NewUUID(), time.Now())
			if err == nil {
				wins.Add(1)
				return
			}
			assert.ErrorIs(t, err, errs.ErrInvalidTransition)
			losses.Add(1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(9), losses.Load())
}

func TestOrderRepository_UpdateStatusIsCompareAndSet(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().OrderRepository()
	o := newTestOrder(t, 1)
	require.NoError(t, repo.Add(ctx, o))

	applied, err := repo.UpdateStatus(ctx, o.ID(), order.Prepared, order.Served, time.Now())
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = repo.UpdateStatus(ctx, o.ID(), order.Ordered, order.Prepared, time.Now())
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = repo.UpdateStatus(ctx, kernel.NewUUID(), order.Ordered, order.Prepared, time.Now())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrderRepository_Filters(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	repo := store.OrderRepository()

	open := newTestOrder(t, 1)
	served := newTestOrder(t, 1)
	require.NoError(t, repo.Add(ctx, open))
	require.NoError(t, repo.Add(ctx, served))
	servedDish := served.Dishes()[0].ID()
	require.NoError(t, repo.ClaimDish(ctx, served.ID(), servedDish, kernel.NewUUID(), time.Now()))
	require.NoError(t, repo.CompleteDish(ctx, served.ID(), servedDish, time.Now()))
	_, err := repo.UpdateStatus(ctx, served.ID(), order.Ordered, order.Prepared, time.Now())
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, served.ID(), order.Prepared, order.Served, time.Now())
	require.NoError(t, err)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.True(t, all[0].IsEqual(open), "orders keep insertion order")

	openOrders, err := repo.GetAllOpen(ctx)
	require.NoError(t, err)
	require.Len(t, openOrders, 1)
	assert.True(t, openOrders[0].IsEqual(open))

	byWaiter, err := repo.GetOpenByWaiter(ctx, served.WaiterID())
	require.NoError(t, err)
	assert.Empty(t, byWaiter)

	byTable, err := repo.GetOrderedByWaiterAndTable(ctx, open.WaiterID(), open.TableID())
	require.NoError(t, err)
	require.Len(t, byTable, 1)
}

func TestTableRepository_Constraints(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().TableRepository()
	waiterID := kernel.NewUUID()

	t1, _ := table.NewTable(kernel.NewUUID(), 1, 4)
	t2, _ := table.NewTable(kernel.NewUUID(), 2, 2)
	dup, _ := table.NewTable(kernel.NewUUID(), 1, 6)
	require.NoError(t, repo.Add(ctx, t1))
	require.NoError(t, repo.Add(ctx, t2))
	require.ErrorIs(t, repo.Add(ctx, dup), errs.ErrConflict)

	stale, err := repo.Get(ctx, t1.ID())
	require.NoError(t, err)

	require.NoError(t, t1.Assign(waiterID))
	require.NoError(t, repo.Update(ctx, t1))

	require.NoError(t, stale.Assign(kernel.NewUUID()))
	require.ErrorIs(t, repo.Update(ctx, stale), errs.ErrConflict, "stale version must lose")

	require.NoError(t, t2.Assign(waiterID))
	require.ErrorIs(t, repo.Update(ctx, t2), errs.ErrConflict, "waiter already holds table 1")

	held, err := repo.GetAssignedToWaiter(ctx, waiterID)
	require.NoError(t, err)
	assert.Equal(t, t1.ID(), held.ID())
	assert.Equal(t, int64(2), held.Version())

	tables, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 1, tables[0].Number())
}

func TestPaymentRepository_OnePaymentPerOrder(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().PaymentRepository()
	orderID := kernel.NewUUID()

	first, _ := payment.NewPayment(kernel.NewUUID(), orderID, kernel.NewUUID(), 1200, payment.Card, time.Now())
	second, _ := payment.NewPayment(kernel.NewUUID(), orderID, kernel.NewUUID(), 1200, payment.Cash, time.Now())

	require.NoError(t, repo.Add(ctx, first))
	require.ErrorIs(t, repo.Add(ctx, second), errs.ErrConflict)

	stored, err := repo.GetByOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, first.ID(), stored.ID())
	assert.Equal(t, payment.Card, stored.Method())
}

func TestOutboxRepository_PendingAndSent(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewStore().OutboxRepository()
	o := newTestOrder(t, 1)

	e1 := event.NewOrderCreated(o)
	e2 := event.NewDishPrepared(o.ID(), o.Dishes()[0].ID(), time.Now())
	e3 := event.NewOrderStatusChanged(o, order.Ordered, time.Now())
	require.NoError(t, repo.Add(ctx, e1, e2, e3))

	pending, err := repo.GetPending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, e1.ID(), pending[0].ID())

	require.NoError(t, repo.MarkSent(ctx, []kernel.UUID{e1.ID(), e2.ID()}, time.Now()))

	pending, err = repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, e3.ID(), pending[0].ID())
}

func TestRelayUnitOfWork_DoesNotHoldStore(t *testing.T) {
	ctx := t.Context()
	store := memory.NewStore()
	factory := memory.NewUnitOfWorkFactory(store)
	o := newTestOrder(t, 1)
	require.NoError(t, store.OutboxRepository().Add(ctx, event.NewOrderCreated(o)))

	relay := factory.CreateRelay()
	require.NoError(t, relay.Begin(ctx))
	pending, err := relay.OutboxRepository().GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	waitCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	writer := factory.Create()
	require.NoError(t, writer.Begin(waitCtx), "a writer must not wait for the relay")
	require.NoError(t, writer.OrderRepository().Add(waitCtx, o))
	require.NoError(t, writer.Commit(waitCtx))

	require.NoError(t, relay.OutboxRepository().MarkSent(ctx, []kernel.UUID{pending[0].ID()}, time.Now()))
	require.NoError(t, relay.Commit(ctx))
	require.ErrorIs(t, relay.Rollback(ctx), memory.ErrNoTransaction)

	pending, err = store.OutboxRepository().GetPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestCatalog_LookupSkipsUnknownItems(t *testing.T) {
	known := kernel.NewUUID()
	catalog := memory.NewCatalog(memoryItem(known, "Margherita", 1200))

	items, err := catalog.Lookup(t.Context(), []kernel.UUID{known, kernel.NewUUID()})

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Margherita", items[known].Name)
}
