package cmd

import (
	"context"
	"fmt"

	httpin "restaurant/internal/adapters/in/http"
	"restaurant/internal/adapters/out/memory"
	"restaurant/internal/adapters/out/postgres"
	"restaurant/internal/adapters/out/postgres/catalogrepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	uowFactory ports.UnitOfWorkFactory
	relayUoW   commands.OutboxUoWFactory
	catalog    ports.Catalog
	orders     queries.OrderReader
	tables     queries.TableReader
}

// NewCompositionRoot wires the postgres adapters. With SeedMenu set the demo menu is
// upserted into the catalog.
func NewCompositionRoot(ctx context.Context, configs Config, gormDB *gorm.DB) (CompositionRoot, error) {
	catalog := catalogrepo.NewGormCatalog(gormDB)
	if configs.SeedMenu {
		if err := catalog.Upsert(ctx, DemoMenu()...); err != nil {
			return CompositionRoot{}, fmt.Errorf("seed menu: %w", err)
		}
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	relayUoW := FuncOutboxUoWFactory(func() commands.OutboxUoW { return uowFactory.Create() })
	return CompositionRoot{
		configs:    configs,
		uowFactory: uowFactory,
		relayUoW:   relayUoW,
		catalog:    catalog,
		orders:     orderrepo.NewGormOrderRepository(gormDB),
		tables:     tablerepo.NewGormTableRepository(gormDB),
	}, nil
}

// NewMemoryCompositionRoot wires the in-process store with the given menu.
func NewMemoryCompositionRoot(configs Config, menu ...ports.CatalogItem) CompositionRoot {
	store := memory.NewStore()
	uowFactory := memory.NewUnitOfWorkFactory(store)
	relayUoW := FuncOutboxUoWFactory(func() commands.OutboxUoW { return uowFactory.CreateRelay() })
	return CompositionRoot{
		configs:    configs,
		uowFactory: uowFactory,
		relayUoW:   relayUoW,
		catalog:    memory.NewCatalog(menu...),
		orders:     store.OrderRepository(),
		tables:     store.TableRepository(),
	}
}

func (c *CompositionRoot) Catalog() ports.Catalog {
	return c.catalog
}

// HTTPHandlers collects the use cases served by the REST API.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:   c.CreateCreateOrderCommandHandler(),
		ClaimDish:     c.CreateAssignDishToKitchenCommandHandler(),
		CompleteDish:  c.CreateMarkDishPreparedCommandHandler(),
		ServeOrder:    c.CreateMarkOrderServedCommandHandler(),
		SettlePayment: c.CreateSettlePaymentCommandHandler(),
		CreateTable:   c.CreateCreateTableCommandHandler(),
		AssignTable:   c.CreateAssignTableCommandHandler(),
		ReleaseTable:  c.CreateReleaseTableCommandHandler(),
		GetOrder:      c.CreateGetOrderQueryHandler(),
		ListOrders:    c.CreateListOrdersQueryHandler(),
		ListTables:    c.CreateListTablesQueryHandler(),
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.uow(), c.catalog)
}

func (c *CompositionRoot) CreateAssignDishToKitchenCommandHandler() commands.AssignDishToKitchenCommandHandler {
	return commands.NewAssignDishToKitchenCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateMarkDishPreparedCommandHandler() commands.MarkDishPreparedCommandHandler {
	return commands.NewMarkDishPreparedCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateMarkOrderServedCommandHandler() commands.MarkOrderServedCommandHandler {
	return commands.NewMarkOrderServedCommandHandler(c.orderUoW())
}

func (c *CompositionRoot) CreateSettlePaymentCommandHandler() commands.SettlePaymentCommandHandler {
	return commands.NewSettlePaymentCommandHandler(c.uow(), c.catalog)
}

func (c *CompositionRoot) CreateCreateTableCommandHandler() commands.CreateTableCommandHandler {
	return commands.NewCreateTableCommandHandler(c.tableUoW())
}

func (c *CompositionRoot) CreateAssignTableCommandHandler() commands.AssignTableCommandHandler {
	return commands.NewAssignTableCommandHandler(c.tableUoW())
}

func (c *CompositionRoot) CreateReleaseTableCommandHandler() commands.ReleaseTableCommandHandler {
	return commands.NewReleaseTableCommandHandler(c.tableUoW())
}

func (c *CompositionRoot) CreateReleaseTableForOrderCommandHandler() commands.ReleaseTableForOrderCommandHandler {
	return commands.NewReleaseTableForOrderCommandHandler(c.uow())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) commands.RelayOutboxCommandHandler {
	return commands.NewRelayOutboxCommandHandler(c.relayUoW, publisher)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orders, c.catalog)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.orders, c.catalog)
}

func (c *CompositionRoot) CreateListTablesQueryHandler() queries.ListTablesQueryHandler {
	return queries.NewListTablesQueryHandler(c.tables)
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) tableUoW() commands.TableUoWFactory {
	return FuncTableUoWFactory(func() commands.TableUoW {
		return c.uowFactory.Create()
	})
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncTableUoWFactory func() commands.TableUoW

func (f FuncTableUoWFactory) Create() commands.TableUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
