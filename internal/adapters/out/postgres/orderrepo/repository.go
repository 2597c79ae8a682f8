package orderrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM. Dish transitions
// and status changes are conditional UPDATEs, so two writers racing on the same row
// cannot both succeed.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order together with its dish line items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, "") {
			return errs.NewConflictErrorWithCause("order", aggregate.ID().String(), "already exists", err)
		}
		return pgerr.Storage("add order", err)
	}

	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.withDishes(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, pgerr.Storage("get order", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetOpenByWaiter(ctx context.Context, waiterID kernel.UUID) ([]*order.Order, error) {
	return r.find(ctx, "waiter_id = ? AND status <> ?", waiterID.Bytes(), int(order.Served))
}

func (r *GormOrderRepository) GetOrderedByWaiterAndTable(
	ctx context.Context,
	waiterID, tableID kernel.UUID,
) ([]*order.Order, error) {
	return r.find(ctx, "waiter_id = ? AND table_id = ? AND status = ?",
		waiterID.Bytes(), tableID.Bytes(), int(order.Ordered))
}

func (r *GormOrderRepository) GetAllOpen(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, "status <> ?", int(order.Served))
}

func (r *GormOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	return r.find(ctx, "1 = 1")
}

// ClaimDish moves the dish from Ordered to Preparing for the kitchen and records the
// kitchen on the order as the last claimer.
func (r *GormOrderRepository) ClaimDish(ctx context.Context, orderID, dishID, kitchenID kernel.UUID, at time.Time) error {
	db := r.db.WithContext(ctx)

	result := db.Model(&DishDTO{}).
		Where("order_id = ? AND id = ? AND status = ?", orderID.Bytes(), dishID.Bytes(), int(order.DishOrdered)).
		Updates(map[string]any{
			"status":     int(order.DishPreparing),
			"kitchen_id": kitchenID.Bytes(),
		})
	if result.Error != nil {
		return pgerr.Storage("claim dish", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.explainMiss(ctx, orderID, dishID, "claim")
	}

	err := db.Model(&OrderDTO{}).
		Where("id = ?", orderID.Bytes()).
		Updates(map[string]any{"kitchen_id": kitchenID.Bytes(), "updated_at": at}).Error
	return pgerr.Storage("claim dish", err)
}

// CompleteDish moves the dish from Preparing to Prepared. Bumping updated_at takes the
// order row lock, which orders concurrent completions of the same order.
func (r *GormOrderRepository) CompleteDish(ctx context.Context, orderID, dishID kernel.UUID, at time.Time) error {
	db := r.db.WithContext(ctx)

	result := db.Model(&DishDTO{}).
		Where("order_id = ? AND id = ? AND status = ?", orderID.Bytes(), dishID.Bytes(), int(order.DishPreparing)).
		Update("status", int(order.DishPrepared))
	if result.Error != nil {
		return pgerr.Storage("complete dish", result.Error)
	}
	if result.RowsAffected == 0 {
		return r.explainMiss(ctx, orderID, dishID, "complete")
	}

	err := db.Model(&OrderDTO{}).Where("id = ?", orderID.Bytes()).Update("updated_at", at).Error
	return pgerr.Storage("complete dish", err)
}

// UpdateStatus writes to only while the stored status still equals from. It reports
// false without error when another writer got there first.
func (r *GormOrderRepository) UpdateStatus(
	ctx context.Context,
	orderID kernel.UUID,
	from, to order.Status,
	at time.Time,
) (bool, error) {
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND status = ?", orderID.Bytes(), int(from)).
		Updates(map[string]any{"status": int(to), "updated_at": at})
	if result.Error != nil {
		return false, pgerr.Storage("update order status", result.Error)
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	var count int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", orderID.Bytes()).Count(&count).Error; err != nil {
		return false, pgerr.Storage("update order status", err)
	}
	if count == 0 {
		return false, errs.NewObjectNotFoundError("order", orderID.String())
	}
	return false, nil
}

// explainMiss turns a conditional update that matched no row into NotFound or
// InvalidTransition.
func (r *GormOrderRepository) explainMiss(ctx context.Context, orderID, dishID kernel.UUID, action string) error {
	db := r.db.WithContext(ctx)

	var orders int64
	if err := db.Model(&OrderDTO{}).Where("id = ?", orderID.Bytes()).Count(&orders).Error; err != nil {
		return pgerr.Storage(action+" dish", err)
	}
	if orders == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	var dish DishDTO
	err := db.First(&dish, "order_id = ? AND id = ?", orderID.Bytes(), dishID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("dish", dishID.String())
	}
	if err != nil {
		return pgerr.Storage(action+" dish", err)
	}

	return errs.NewInvalidTransitionError("dish", order.DishStatus(dish.Status), action)
}

func (r *GormOrderRepository) withDishes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Dishes", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func (r *GormOrderRepository) find(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := r.withDishes(ctx).Where(query, args...).Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, pgerr.Storage("list orders", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
