// Package tablerepo persists dining tables with GORM.
package tablerepo

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"

	"github.com/google/uuid"
)

// NumberIndex is the unique index on table numbers.
const NumberIndex = "idx_tables_number"

// AssignedWaiterIndex is the partial unique index allowing one Assigned table per waiter.
const AssignedWaiterIndex = "uq_tables_assigned_waiter"

// TableDTO is the tables row. Version is bumped on every binding change.
type TableDTO struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number   int        `gorm:"type:int;not null;uniqueIndex:idx_tables_number"`
	Capacity int        `gorm:"type:int;not null"`
	Status   int        `gorm:"type:smallint;not null"`
	WaiterID *uuid.UUID `gorm:"type:uuid;index"`
	Version  int64      `gorm:"type:bigint;not null"`
}

func (TableDTO) TableName() string {
	return "tables"
}

func fromDomain(t *table.Table) TableDTO {
	var waiterID *uuid.UUID
	if id := t.WaiterID(); id != nil {
		raw := id.Bytes()
		waiterID = &raw
	}

	return TableDTO{
		ID:       t.ID().Bytes(),
		Number:   t.Number(),
		Capacity: t.Capacity(),
		Status:   int(t.Status()),
		WaiterID: waiterID,
		Version:  t.Version(),
	}
}

func toDomain(dto TableDTO) (*table.Table, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var waiterID *kernel.UUID
	if dto.WaiterID != nil {
		wID, waiterErr := kernel.UUIDFromBytes((*dto.WaiterID)[:])
		if waiterErr != nil {
			return nil, waiterErr
		}
		waiterID = &wID
	}

	return table.RestoreTable(id, dto.Number, dto.Capacity, table.Status(dto.Status), waiterID, dto.Version)
}
