// Package payment records how an order was settled. A payment is written once per
// order, together with the release of the order's table.
package payment

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Method is the way the guest paid.
type Method string

const (
	Cash Method = "cash"
	Card Method = "card"
)

// ParseMethod accepts "cash" and "card" in any letter case.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToLower(strings.TrimSpace(s)))
	if err := m.Validate(); err != nil {
		return "", err
	}
	return m, nil
}

func (m Method) Validate() error {
	switch m {
	case Cash, Card:
		return nil
	case "":
		return errs.NewValueIsRequiredError("method")
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a supported payment method", string(m)))
	}
}

func (m Method) String() string {
	return string(m)
}

// Payment is the settlement of one served order.
type Payment struct {
	id      kernel.UUID
	orderID kernel.UUID
	tableID kernel.UUID
	amount  kernel.Money
	method  Method
	paidAt  time.Time
	guard   guard.ConstructorGuard
}

func NewPayment(
	id kernel.UUID,
	orderID kernel.UUID,
	tableID kernel.UUID,
	amount kernel.Money,
	method Method,
	paidAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		requiredID("order id", orderID),
		requiredID("table id", tableID),
		method.Validate(),
	); err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", amount))
	}

	return &Payment{
		id:      id,
		orderID: orderID,
		tableID: tableID,
		amount:  amount,
		method:  method,
		paidAt:  paidAt,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil {
		return ErrPaymentIsNotConstructed
	}
	return p.guard.Validate(ErrPaymentIsNotConstructed)
}

func (p *Payment) ID() kernel.UUID { return p.id }
func (p *Payment) OrderID() kernel.UUID { return p.orderID }
func (p *Payment) TableID() kernel.UUID { return p.tableID }
func (p *Payment) Amount() kernel.Money { return p.amount }
func (p *Payment) Method() Method { return p.method }
func (p *Payment) PaidAt() time.Time { return p.paidAt }

func requiredID(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
