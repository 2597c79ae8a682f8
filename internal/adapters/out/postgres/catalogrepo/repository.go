// Package catalogrepo reads the menu from PostgreSQL.
package catalogrepo

import (
	"context"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuItemDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"type:varchar(255);not null"`
	Price int64     `gorm:"type:bigint;not null"`
}

func (MenuItemDTO) TableName() string {
	return "menu_items"
}

// GormCatalog implements ports.Catalog.
type GormCatalog struct {
	db *gorm.DB
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{db: db}
}

// Lookup returns the known items among ids. Unknown ids are absent from the result.
func (c *GormCatalog) Lookup(ctx context.Context, ids []kernel.UUID) (map[kernel.UUID]ports.CatalogItem, error) {
	items := make(map[kernel.UUID]ports.CatalogItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	var dtos []MenuItemDTO
	if err := c.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, pgerr.Storage("lookup menu items", err)
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		items[id] = ports.CatalogItem{ID: id, Name: dto.Name, Price: kernel.Money(dto.Price)}
	}

	return items, nil
}

// Upsert inserts menu items or overwrites name and price of existing ones.
func (c *GormCatalog) Upsert(ctx context.Context, items ...ports.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	dtos := make([]MenuItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, MenuItemDTO{ID: item.ID.Bytes(), Name: item.Name, Price: int64(item.Price)})
	}

	err := c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "price"}),
		}).
		Create(&dtos).Error
	return pgerr.Storage("upsert menu items", err)
}
