package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
)

// TableRepository defines the persistence contract for dining tables.
//
// Update is guarded by the table version: the stored row is only written when its
// version still equals Table.Version(), and the write bumps it. A stale write and a
// second Assigned table for the same waiter both fail with errs.ConflictError.
type TableRepository interface {
	// Add persists a new table. A duplicate table number is an errs.ConflictError.
	Add(ctx context.Context, t *table.Table) error

	// Get retrieves a table by id. Returns errs.ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*table.Table, error)

	// GetAll returns every table ordered by number.
	GetAll(ctx context.Context) ([]*table.Table, error)

	// GetAssignedToWaiter returns the table currently bound to the waiter, or
	// errs.ObjectNotFoundError when the waiter holds none.
	GetAssignedToWaiter(ctx context.Context, waiterID kernel.UUID) (*table.Table, error)

	// Update writes the table's binding if its version is unchanged since it was read.
	Update(ctx context.Context, t *table.Table) error
}
