// Package orderrepo persists order aggregates and their dish line items with GORM.
package orderrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the orders row. Storage order is creation time, then id.
type OrderDTO struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TableID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	WaiterID  uuid.UUID  `gorm:"type:uuid;not null;index"`
	KitchenID *uuid.UUID `gorm:"type:uuid"`
	Status    int        `gorm:"type:smallint;not null;index"`
	CreatedAt time.Time  `gorm:"not null;index"`
	UpdatedAt time.Time  `gorm:"not null"`
	Dishes    []DishDTO  `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// DishDTO is one dish line item. Position keeps the order the waiter entered them in.
type DishDTO struct {
	OrderID   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Position  int        `gorm:"type:int;not null"`
	ItemID    uuid.UUID  `gorm:"type:uuid;not null"`
	Quantity  int        `gorm:"type:bigint;not null"`
	Status    int        `gorm:"type:smallint;not null"`
	KitchenID *uuid.UUID `gorm:"type:uuid"`
}

func (DishDTO) TableName() string {
	return "order_dishes"
}

func fromDomain(o *order.Order) OrderDTO {
	orderID := o.ID().Bytes()
	dishes := make([]DishDTO, 0, len(o.Dishes()))
	for i, d := range o.Dishes() {
		dishes = append(dishes, DishDTO{
			OrderID:   orderID,
			ID:        d.ID().Bytes(),
			Position:  i,
			ItemID:    d.ItemID().Bytes(),
			Quantity:  d.Quantity().Int(),
			Status:    int(d.Status()),
			KitchenID: rawID(d.KitchenID()),
		})
	}

	return OrderDTO{
		ID:        orderID,
		TableID:   o.TableID().Bytes(),
		WaiterID:  o.WaiterID().Bytes(),
		KitchenID: rawID(o.KitchenID()),
		Status:    int(o.Status()),
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
		Dishes:    dishes,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}
	waiterID, err := kernel.UUIDFromBytes(dto.WaiterID[:])
	if err != nil {
		return nil, err
	}
	kitchenID, err := domainID(dto.KitchenID)
	if err != nil {
		return nil, err
	}

	dishes := make([]*order.Dish, 0, len(dto.Dishes))
	for _, dishDTO := range dto.Dishes {
		d, dishErr := dishToDomain(dishDTO)
		if dishErr != nil {
			return nil, dishErr
		}
		dishes = append(dishes, d)
	}

	return order.RestoreOrder(
		id, tableID, waiterID, kitchenID, dishes,
		order.Status(dto.Status), dto.CreatedAt.UTC(), dto.UpdatedAt.UTC(),
	)
}

func dishToDomain(dto DishDTO) (*order.Dish, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	itemID, err := kernel.UUIDFromBytes(dto.ItemID[:])
	if err != nil {
		return nil, err
	}
	qty, err := kernel.NewQuantity(dto.Quantity)
	if err != nil {
		return nil, err
	}
	kitchenID, err := domainID(dto.KitchenID)
	if err != nil {
		return nil, err
	}

	return order.RestoreDish(id, itemID, qty, order.DishStatus(dto.Status), kitchenID)
}

func rawID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes((*raw)[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
