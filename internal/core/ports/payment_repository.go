package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/payment"
)

// PaymentRepository stores settlements. An order is paid at most once; adding a second
// payment for the same order returns errs.ConflictError.
type PaymentRepository interface {
	Add(ctx context.Context, p *payment.Payment) error
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)
}
