package kernel

import "fmt"

// Money is an amount in minor currency units (cents). Currency conversion happens
// outside this service, so Money carries no currency code.
type Money int64

// Times multiplies a unit price by a quantity.
func (m Money) Times(q Quantity) Money {
	return m * Money(q.Int())
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
