package postgres_test

import (
	"context"
	"time"

	postgres_adapter "restaurant/internal/adapters/out/postgres"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/model/table"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// databaseSuite starts one PostgreSQL container per suite and truncates every table
// before each test.
type databaseSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (s *databaseSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres_adapter.Migrate(ctx, db))
}

func (s *databaseSuite) SetupTest() {
	err := s.db.Exec("TRUNCATE TABLE outbox, payments, order_dishes, orders, tables, menu_items").Error
	s.Require().NoError(err)
}

func (s *databaseSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

var baseTime = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func newTestOrder(s *databaseSuite, tableID, waiterID kernel.UUID, createdAt time.Time, items ...kernel.UUID) *order.Order {
	if len(items) == 0 {
		items = []kernel.UUID{kernel.NewUUID()}
	}

	dishes := make([]*order.Dish, 0, len(items))
	for _, itemID := range items {
		qty, err := kernel.NewQuantity(1)
		s.Require().NoError(err)
		d, err := order.NewDish(kernel.NewUUID(), itemID, qty)
		s.Require().NoError(err)
		dishes = append(dishes, d)
	}

	o, err := order.NewOrder(kernel.NewUUID(), tableID, waiterID, dishes, createdAt)
	s.Require().NoError(err)
	return o
}

func newTestTable(s *databaseSuite, number int) *table.Table {
	t, err := table.NewTable(kernel.NewUUID(), number, 4)
	s.Require().NoError(err)
	return t
}
