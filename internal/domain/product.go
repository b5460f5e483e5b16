package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with on-hand stock. Quantity never goes
// negative as a post-state of a committed order.
type Product struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSatisfy reports whether the product has enough stock for the requested
// quantity. The check is strict: an order never drains a product to zero.
func (p Product) CanSatisfy(requested int) bool {
	return requested < p.Quantity
}

// StockAdjustment is one product's quantity delta within an accepted order.
type StockAdjustment struct {
	ProductID string
	Quantity  int
}
