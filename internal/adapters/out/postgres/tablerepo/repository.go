package tablerepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTableRepository implements ports.TableRepository using GORM.
type GormTableRepository struct {
	db *gorm.DB
}

func NewGormTableRepository(db *gorm.DB) *GormTableRepository {
	return &GormTableRepository{db: db}
}

func (r *GormTableRepository) Add(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, NumberIndex) {
			return errs.NewConflictErrorWithCause("table number", t.Number(), "already exists", err)
		}
		if pgerr.IsUniqueViolation(err, "") {
			return errs.NewConflictErrorWithCause("table", t.ID().String(), "already exists", err)
		}
		return pgerr.Storage("add table", err)
	}

	return nil
}

func (r *GormTableRepository) Get(ctx context.Context, id kernel.UUID) (*table.Table, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TableDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table", id.String())
		}
		return nil, pgerr.Storage("get table", err)
	}

	return toDomain(dto)
}

func (r *GormTableRepository) GetAll(ctx context.Context) ([]*table.Table, error) {
	var dtos []TableDTO
	if err := r.db.WithContext(ctx).Order("number").Find(&dtos).Error; err != nil {
		return nil, pgerr.Storage("list tables", err)
	}

	tables := make([]*table.Table, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}

	return tables, nil
}

func (r *GormTableRepository) GetAssignedToWaiter(ctx context.Context, waiterID kernel.UUID) (*table.Table, error) {
	if err := waiterID.Validate(); err != nil {
		return nil, err
	}

	var dto TableDTO
	err := r.db.WithContext(ctx).
		First(&dto, "waiter_id = ? AND status = ?", waiterID.Bytes(), int(table.Assigned)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("table assigned to waiter", waiterID.String())
		}
		return nil, pgerr.Storage("get waiter table", err)
	}

	return toDomain(dto)
}

// Update writes the binding only if the stored version matches t.Version(). A second
// Assigned table for the same waiter trips AssignedWaiterIndex.
func (r *GormTableRepository) Update(ctx context.Context, t *table.Table) error {
	if err := t.Validate(); err != nil {
		return err
	}

	dto := fromDomain(t)
	db := r.db.WithContext(ctx)
	result := db.Model(&TableDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"status":    dto.Status,
			"waiter_id": dto.WaiterID,
			"version":   dto.Version + 1,
		})
	if result.Error != nil {
		if pgerr.IsUniqueViolation(result.Error, AssignedWaiterIndex) {
			return errs.NewConflictErrorWithCause("waiter", dto.WaiterID.String(), "already assigned to another table", result.Error)
		}
		return pgerr.Storage("update table", result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&TableDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
		return pgerr.Storage("update table", err)
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("table", t.ID().String())
	}
	return errs.NewConflictError("table", t.ID().String(), "modified concurrently")
}
