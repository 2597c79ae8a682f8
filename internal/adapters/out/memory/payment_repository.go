package memory

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/payment"
	"restaurant/internal/pkg/errs"
)

// PaymentRepository implements ports.PaymentRepository, keyed by order.
type PaymentRepository struct {
	repo
}

func (r *PaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return r.with(ctx, func(st *state) error {
		if _, paid := st.payments[p.OrderID()]; paid {
			return errs.NewConflictError("order", p.OrderID().String(), "already paid")
		}
		st.payments[p.OrderID()] = paymentRecord{
			id:      p.ID(),
			orderID: p.OrderID(),
			tableID: p.TableID(),
			amount:  p.Amount(),
			method:  p.Method().String(),
			paidAt:  p.PaidAt(),
		}
		return nil
	})
}

func (r *PaymentRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error) {
	var out *payment.Payment
	err := r.with(ctx, func(st *state) error {
		rec, ok := st.payments[orderID]
		if !ok {
			return errs.NewObjectNotFoundError("payment of order", orderID.String())
		}
		p, err := payment.NewPayment(rec.id, rec.orderID, rec.tableID, rec.amount, payment.Method(rec.method), rec.paidAt)
		out = p
		return err
	})
	return out, err
}
