package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/payment"
	"restaurant/internal/pkg/guard"
)

var ErrSettlePaymentCommandIsNotConstructed = errors.New(
	"SettlePaymentCommand must be created via NewSettlePaymentCommand constructor",
)

// SettlePaymentCommand closes a served order: the bill is paid and the table freed.
type SettlePaymentCommand struct {
	orderID kernel.UUID
	method  payment.Method

	guard guard.ConstructorGuard
}

func NewSettlePaymentCommand(orderID kernel.UUID, method string) (SettlePaymentCommand, error) {
	m, methodErr := payment.ParseMethod(method)
	if err := errors.Join(requireID("order id", orderID), methodErr); err != nil {
		return SettlePaymentCommand{}, err
	}

	return SettlePaymentCommand{
		orderID: orderID,
		method:  m,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SettlePaymentCommand) Validate() error {
	return c.guard.Validate(ErrSettlePaymentCommandIsNotConstructed)
}

func (c SettlePaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SettlePaymentCommand) Method() payment.Method {
	return c.method
}
