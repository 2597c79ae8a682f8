package postgres

import (
	"context"
	"fmt"

	"restaurant/internal/adapters/out/postgres/catalogrepo"
	"restaurant/internal/adapters/out/postgres/orderrepo"
	"restaurant/internal/adapters/out/postgres/outboxrepo"
	"restaurant/internal/adapters/out/postgres/paymentrepo"
	"restaurant/internal/adapters/out/postgres/tablerepo"
	"restaurant/internal/core/domain/model/table"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Models lists every persisted DTO in dependency order.
func Models() []any {
	return []any{
		&catalogrepo.MenuItemDTO{},
		&tablerepo.TableDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.DishDTO{},
		&paymentrepo.PaymentDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or updates the schema. AutoMigrate cannot express partial indexes,
// so the one-Assigned-table-per-waiter index is created separately.
func Migrate(ctx context.Context, db *gorm.DB) error {
	conn := db.WithContext(ctx)
	if err := conn.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	stmt := fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (%s) WHERE %s = %d",
		pq.QuoteIdentifier(tablerepo.AssignedWaiterIndex),
		pq.QuoteIdentifier(tablerepo.TableDTO{}.TableName()),
		pq.QuoteIdentifier("waiter_id"),
		pq.QuoteIdentifier("status"),
		int(table.Assigned),
	)
	if err := conn.Exec(stmt).Error; err != nil {
		return fmt.Errorf("create %s: %w", tablerepo.AssignedWaiterIndex, err)
	}

	return nil
}
