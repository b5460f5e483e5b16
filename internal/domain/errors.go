package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrCustomerNotFound     = errors.New("customer not found")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductsNotFound     = errors.New("products not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrTxConflict           = errors.New("transaction conflict")
	ErrEmptyOrder           = errors.New("order has no lines")
	ErrInvalidQuantity      = errors.New("invalid quantity")
	ErrInvalidPrice         = errors.New("invalid price")
	ErrInvalidID            = errors.New("invalid id")
	ErrProductNameRequired  = errors.New("product name required")
	ErrProductNameTaken     = errors.New("product name already taken")
	ErrCustomerNameRequired = errors.New("customer name required")
	ErrCustomerEmailTaken   = errors.New("customer email already taken")
	ErrEmailRequired        = errors.New("email required")
)

// ShortLine identifies one order line that failed the stock sufficiency check.
type ShortLine struct {
	ProductID string
	Requested int
	Available int
}

// InsufficientStockError reports every offending line of a rejected order.
// It matches ErrInsufficientStock under errors.Is.
type InsufficientStockError struct {
	Lines []ShortLine
}

func (e *InsufficientStockError) Error() string {
	ids := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		ids[i] = l.ProductID
	}
	return fmt.Sprintf("insufficient stock for products: %s", strings.Join(ids, ", "))
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
