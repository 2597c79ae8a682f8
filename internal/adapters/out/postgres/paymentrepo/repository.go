// Package paymentrepo persists settlements with GORM. The unique index on order_id
// enforces one payment per order.
package paymentrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/payment"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payments_order_id"`
	TableID uuid.UUID `gorm:"type:uuid;not null"`
	Amount  int64     `gorm:"type:bigint;not null"`
	Method  string    `gorm:"type:varchar(16);not null"`
	PaidAt  time.Time `gorm:"not null"`
}

func (PaymentDTO) TableName() string {
	return "payments"
}

type GormPaymentRepository struct {
	db *gorm.DB
}

func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

func (r *GormPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	dto := PaymentDTO{
		ID:      p.ID().Bytes(),
		OrderID: p.OrderID().Bytes(),
		TableID: p.TableID().Bytes(),
		Amount:  int64(p.Amount()),
		Method:  p.Method().String(),
		PaidAt:  p.PaidAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err, "") {
			return errs.NewConflictErrorWithCause("order", p.OrderID().String(), "already paid", err)
		}
		return pgerr.Storage("add payment", err)
	}

	return nil
}

func (r *GormPaymentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto PaymentDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("payment for order", orderID.String())
		}
		return nil, pgerr.Storage("get payment", err)
	}

	return toDomain(dto)
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	tableID, err := kernel.UUIDFromBytes(dto.TableID[:])
	if err != nil {
		return nil, err
	}
	method, err := payment.ParseMethod(dto.Method)
	if err != nil {
		return nil, err
	}

	return payment.NewPayment(id, orderID, tableID, kernel.Money(dto.Amount), method, dto.PaidAt.UTC())
}
