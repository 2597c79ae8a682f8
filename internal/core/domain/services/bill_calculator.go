package services

import (
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// BillLine is one priced dish line item.
type BillLine struct {
	DishID    kernel.UUID
	ItemID    kernel.UUID
	Quantity  int
	UnitPrice kernel.Money
	Total     kernel.Money
	Priced    bool
}

// Bill is the priced view of an order's dishes.
type Bill struct {
	Lines []BillLine
	Total kernel.Money
}

// BillCalculator prices dish line items. Items missing from the price list are billed
// at zero and flagged as not priced instead of failing the settlement.
type BillCalculator struct{}

func NewBillCalculator() BillCalculator {
	return BillCalculator{}
}

func (BillCalculator) Calculate(dishes []*order.Dish, prices map[kernel.UUID]kernel.Money) Bill {
	bill := Bill{Lines: make([]BillLine, 0, len(dishes))}

	for _, d := range dishes {
		price, ok := prices[d.ItemID()]
		line := BillLine{
			DishID:    d.ID(),
			ItemID:    d.ItemID(),
			Quantity:  d.Quantity().Int(),
			UnitPrice: price,
			Total:     price.Times(d.Quantity()),
			Priced:    ok,
		}
		bill.Lines = append(bill.Lines, line)
		bill.Total += line.Total
	}

	return bill
}
