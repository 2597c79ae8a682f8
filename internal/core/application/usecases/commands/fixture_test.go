package commands_test

import (
	"testing"

	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"

	"github.com/stretchr/testify/require"
)

// restaurant wires every handler to one memory store and a two-item menu.
type restaurant struct {
	store   *memory.Store
	catalog *memory.Catalog

	pizzaID kernel.UUID
	soupID  kernel.UUID

	createTable     commands.CreateTableCommandHandler
	assignTable     commands.AssignTableCommandHandler
	releaseTable    commands.ReleaseTableCommandHandler
	releaseForOrder commands.ReleaseTableForOrderCommandHandler
	createOrder     commands.CreateOrderCommandHandler
	claimDish       commands.AssignDishToKitchenCommandHandler
	completeDish    commands.MarkDishPreparedCommandHandler
	serveOrder      commands.MarkOrderServedCommandHandler
	settlePayment   commands.SettlePaymentCommandHandler
}

func newRestaurant(t *testing.T) *restaurant {
	t.Helper()

	store := memory.NewStore()
	factories := memoryFactories{f: memory.NewUnitOfWorkFactory(store)}
	r := &restaurant{
		store:   store,
		pizzaID: kernel.NewUUID(),
		soupID:  kernel.NewUUID(),
	}
	r.catalog = memory.NewCatalog(
		ports.CatalogItem{ID: r.pizzaID, Name: "Margherita", Price: 1200},
		ports.CatalogItem{ID: r.soupID, Name: "Tomato soup", Price: 650},
	)

	r.createTable = commands.NewCreateTableCommandHandler(factories.tables())
	r.assignTable = commands.NewAssignTableCommandHandler(factories.tables())
	r.releaseTable = commands.NewReleaseTableCommandHandler(factories.tables())
	r.releaseForOrder = commands.NewReleaseTableForOrderCommandHandler(factories.uow())
	r.createOrder = commands.NewCreateOrderCommandHandler(factories.uow(), r.catalog)
	r.claimDish = commands.NewAssignDishToKitchenCommandHandler(factories.orders())
	r.completeDish = commands.NewMarkDishPreparedCommandHandler(factories.orders())
	r.serveOrder = commands.NewMarkOrderServedCommandHandler(factories.orders())
	r.settlePayment = commands.NewSettlePaymentCommandHandler(factories.uow(), r.catalog)
	return r
}

func (r *restaurant) addTable(t *testing.T, number int) kernel.UUID {
	t.Helper()

	cmd, err := commands.NewCreateTableCommand(kernel.NewUUID(), number, 4)
	require.NoError(t, err)
	created, err := r.createTable.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return created.ID()
}

func (r *restaurant) assign(t *testing.T, tableID, waiterID kernel.UUID) error {
	t.Helper()

	cmd, err := commands.NewAssignTableCommand(tableID, waiterID)
	require.NoError(t, err)
	_, err = r.assignTable.Handle(t.Context(), cmd)
	return err
}

// seat creates a table and binds it to a new waiter.
func (r *restaurant) seat(t *testing.T, number int) (kernel.UUID, kernel.UUID) {
	t.Helper()

	tableID := r.addTable(t, number)
	waiterID := kernel.NewUUID()
	require.NoError(t, r.assign(t, tableID, waiterID))
	return tableID, waiterID
}

func (r *restaurant) place(t *testing.T, tableID, waiterID kernel.UUID, lines ...commands.DishLine) *order.Order {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), tableID, waiterID, lines)
	require.NoError(t, err)
	o, err := r.createOrder.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (r *restaurant) claim(t *testing.T, orderID, dishID, kitchenID kernel.UUID) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewAssignDishToKitchenCommand(orderID, dishID, kitchenID)
	require.NoError(t, err)
	return r.claimDish.Handle(t.Context(), cmd)
}

func (r *restaurant) complete(t *testing.T, orderID, dishID kernel.UUID) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewMarkDishPreparedCommand(orderID, dishID)
	require.NoError(t, err)
	return r.completeDish.Handle(t.Context(), cmd)
}

func (r *restaurant) serve(t *testing.T, orderID kernel.UUID) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewMarkOrderServedCommand(orderID)
	require.NoError(t, err)
	return r.serveOrder.Handle(t.Context(), cmd)
}

func (r *restaurant) settle(t *testing.T, orderID kernel.UUID) (commands.SettlePaymentResult, error) {
	t.Helper()

	cmd, err := commands.NewSettlePaymentCommand(orderID, "card")
	require.NoError(t, err)
	return r.settlePayment.Handle(t.Context(), cmd)
}
