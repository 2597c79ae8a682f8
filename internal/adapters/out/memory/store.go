// Package memory is a single-process implementation of the persistence ports. It keeps
// committed state in one Store and gives every unit of work exclusive access to a
// private copy of it, published on Commit and dropped on Rollback.
//
// The store backs STORAGE_DRIVER=memory and the use case tests that exercise the
// concurrency properties of the handlers against real atomic storage.
package memory

import (
	"context"
	"errors"
	"slices"
	"time"

	"restaurant/internal/core/domain/model/event"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/core/ports"
)

// ErrNoTransaction is returned by Commit and Rollback without a preceding Begin.
var ErrNoTransaction = errors.New("memory: no active transaction")

type dishRecord struct {
	id        kernel.UUID
	itemID    kernel.UUID
	quantity  int
	status    order.DishStatus
	kitchenID *kernel.UUID
}

type orderRecord struct {
	id        kernel.UUID
	tableID   kernel.UUID
	waiterID  kernel.UUID
	kitchenID *kernel.UUID
	status    order.Status
	createdAt time.Time
	updatedAt time.Time
	dishes    []dishRecord
}

type tableRecord struct {
	id       kernel.UUID
	number   int
	capacity int
	status   table.Status
	waiterID *kernel.UUID
	version  int64
}

type paymentRecord struct {
	id      kernel.UUID
	orderID kernel.UUID
	tableID kernel.UUID
	amount  kernel.Money
	method  string
	paidAt  time.Time
}

type outboxRecord struct {
	event  event.Event
	sentAt *time.Time
}

// state is one consistent version of everything the store holds. Records are values,
// so cloning the maps and slices is a deep copy apart from dish slices, which are
// copied explicitly.
type state struct {
	orders   map[kernel.UUID]orderRecord
	orderIDs []kernel.UUID
	tables   map[kernel.UUID]tableRecord
	payments map[kernel.UUID]paymentRecord
	outbox   []outboxRecord
}

func newState() *state {
	return &state{
		orders:   make(map[kernel.UUID]orderRecord),
		tables:   make(map[kernel.UUID]tableRecord),
		payments: make(map[kernel.UUID]paymentRecord),
	}
}

func (s *state) clone() *state {
	c := &state{
		orders:   make(map[kernel.UUID]orderRecord, len(s.orders)),
		orderIDs: slices.Clone(s.orderIDs),
		tables:   make(map[kernel.UUID]tableRecord, len(s.tables)),
		payments: make(map[kernel.UUID]paymentRecord, len(s.payments)),
		outbox:   slices.Clone(s.outbox),
	}
	for id, rec := range s.orders {
		rec.dishes = slices.Clone(rec.dishes)
		c.orders[id] = rec
	}
	for id, rec := range s.tables {
		c.tables[id] = rec
	}
	for id, rec := range s.payments {
		c.payments[id] = rec
	}
	return c
}

// Store owns the committed state. A one-slot semaphore serializes units of work and
// standalone repository calls; acquiring it honors context cancellation.
type Store struct {
	sem       chan struct{}
	committed *state
}

func NewStore() *Store {
	return &Store{
		sem:       make(chan struct{}, 1),
		committed: newState(),
	}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release() {
	<-s.sem
}

// view runs fn against the committed state while holding the store exclusively.
func (s *Store) view(ctx context.Context, fn func(st *state) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	return fn(s.committed)
}

// OrderRepository returns a repository operating on committed state, one call at a time.
func (s *Store) OrderRepository() ports.OrderRepository {
	return &OrderRepository{repo{store: s}}
}

func (s *Store) TableRepository() ports.TableRepository {
	return &TableRepository{repo{store: s}}
}

func (s *Store) PaymentRepository() ports.PaymentRepository {
	return &PaymentRepository{repo{store: s}}
}

func (s *Store) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{repo{store: s}}
}

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork holds the store exclusively from Begin until Commit or Rollback.
type UnitOfWork struct {
	store *Store
	tx    *state
}

// Begin acquires the store and takes a private copy of the committed state. Calling
// it again on an active unit of work is a no-op.
func (uow *UnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	if err := uow.store.acquire(ctx); err != nil {
		return err
	}

	uow.tx = uow.store.committed.clone()
	return nil
}

// Commit publishes the private copy as the committed state.
func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.store.committed = uow.tx
	uow.tx = nil
	uow.store.release()
	return nil
}

// Rollback drops the private copy.
func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return ErrNoTransaction
	}

	uow.tx = nil
	uow.store.release()
	return nil
}

func (uow *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{repo{store: uow.store, tx: uow.tx}}
}

func (uow *UnitOfWork) TableRepository() ports.TableRepository {
	return &TableRepository{repo{store: uow.store, tx: uow.tx}}
}

func (uow *UnitOfWork) PaymentRepository() ports.PaymentRepository {
	return &PaymentRepository{repo{store: uow.store, tx: uow.tx}}
}

func (uow *UnitOfWork) OutboxRepository() ports.OutboxRepository {
	return &OutboxRepository{repo{store: uow.store, tx: uow.tx}}
}

// repo is embedded by every repository: inside a unit of work it works on the private
// copy, outside one it locks the store for the duration of each call.
type repo struct {
	store *Store
	tx    *state
}

func (r repo) with(ctx context.Context, fn func(st *state) error) error {
	if r.tx != nil {
		return fn(r.tx)
	}
	return r.store.view(ctx, fn)
}

// RelayUnitOfWork gives the outbox relay access to the outbox without holding the
// store: every repository call locks it only for its own duration, so publishing to a
// broker between GetPending and MarkSent does not stall other units of work. Begin,
// Commit and Rollback only track the lifecycle and undo nothing.
type RelayUnitOfWork struct {
	store  *Store
	active bool
}

// CreateRelay returns a RelayUnitOfWork over the factory's store.
func (f *UnitOfWorkFactory) CreateRelay() *RelayUnitOfWork {
	return &RelayUnitOfWork{store: f.store}
}

func (uow *RelayUnitOfWork) Begin(_ context.Context) error {
	uow.active = true
	return nil
}

func (uow *RelayUnitOfWork) Commit(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.active = false
	return nil
}

func (uow *RelayUnitOfWork) Rollback(_ context.Context) error {
	if !uow.active {
		return ErrNoTransaction
	}
	uow.active = false
	return nil
}

func (uow *RelayUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return uow.store.OutboxRepository()
}
