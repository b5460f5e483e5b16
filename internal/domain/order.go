package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLine is one priced line of a committed order. UnitPrice is the
// product price captured at acceptance time and never changes afterwards.
type OrderLine struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order is an accepted purchase. It is created exactly once per successful
// acceptance and never mutated afterwards.
type Order struct {
	ID         string
	CustomerID string
	Lines      []OrderLine
	CreatedAt  time.Time
}

// Total is the sum of quantity times unit price over all lines.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}
