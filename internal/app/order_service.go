package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/santanarscs/orderdesk/internal/clock"
	"github.com/santanarscs/orderdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// Transactor runs a function inside a single storage transaction.
// Repository calls made with the supplied context join that transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type CustomerDirectory interface {
	FindByID(ctx context.Context, id string) (*domain.Customer, error)
}

type InventoryStore interface {
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	GetForUpdate(ctx context.Context, ids []string) ([]domain.Product, error)
	DecrementQuantities(ctx context.Context, adjustments []domain.StockAdjustment) ([]domain.Product, error)
}

type OrderLedger interface {
	CreateOrder(ctx context.Context, order domain.Order) error
	GetOrderByID(ctx context.Context, id string) (*domain.Order, error)
	ListOrdersByCustomer(ctx context.Context, customerID string) ([]domain.Order, error)
}

type OrderService struct {
	tx          Transactor
	customers   CustomerDirectory
	inventory   InventoryStore
	ledger      OrderLedger
	clock       clock.Clock
	maxAttempts int
}

const defaultMaxAttempts = 3

func NewOrderService(tx Transactor, customers CustomerDirectory, inventory InventoryStore, ledger OrderLedger, clk clock.Clock, opts ...OrderServiceOption) *OrderService {
	svc := &OrderService{
		tx:          tx,
		customers:   customers,
		inventory:   inventory,
		ledger:      ledger,
		clock:       clk,
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type OrderServiceOption func(*OrderService)

// WithMaxAttempts overrides how many times a placement is retried after a
// transaction conflict.
func WithMaxAttempts(n int) OrderServiceOption {
	return func(s *OrderService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

type OrderLineRequest struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	CustomerID string
	Lines      []OrderLineRequest
}

// PlaceOrder validates the request against a locked inventory snapshot and,
// when every line has sufficient stock, persists the order and decrements
// stock in the same transaction. Only transaction conflicts are retried;
// validation failures are terminal and leave no state behind.
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	if in.CustomerID == "" {
		return domain.Order{}, domain.ErrInvalidID
	}
	if len(in.Lines) == 0 {
		return domain.Order{}, domain.ErrEmptyOrder
	}
	for _, line := range in.Lines {
		if line.ProductID == "" {
			return domain.Order{}, domain.ErrInvalidID
		}
		if line.Quantity <= 0 {
			return domain.Order{}, domain.ErrInvalidQuantity
		}
	}

	var (
		order domain.Order
		err   error
	)
	for attempt := 0; attempt < s.maxAttempts; attempt++ {
		order, err = s.placeOnce(ctx, in)
		if !errors.Is(err, domain.ErrTxConflict) {
			break
		}
	}
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

func (s *OrderService) placeOnce(ctx context.Context, in PlaceOrderInput) (domain.Order, error) {
	var result domain.Order

	err := s.tx.WithTx(ctx, func(txCtx context.Context) error {
		customer, err := s.customers.FindByID(txCtx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrCustomerNotFound
		}

		wanted := requestedByProduct(in.Lines)
		ids := sortedIDs(wanted)

		// Locks are taken in sorted id order so overlapping orders cannot
		// deadlock each other.
		products, err := s.inventory.GetForUpdate(txCtx, ids)
		if err != nil {
			if errors.Is(err, domain.ErrTxConflict) {
				return err
			}
			return fmt.Errorf("%w: %v", domain.ErrProductsNotFound, err)
		}
		if len(products) == 0 {
			return domain.ErrProductsNotFound
		}

		byID := make(map[string]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}

		var short []domain.ShortLine
		for _, id := range ids {
			requested := wanted[id]
			product, ok := byID[id]
			if !ok {
				// Unknown product counts as zero stock.
				short = append(short, domain.ShortLine{ProductID: id, Requested: requested})
				continue
			}
			if !product.CanSatisfy(requested) {
				short = append(short, domain.ShortLine{
					ProductID: id,
					Requested: requested,
					Available: product.Quantity,
				})
			}
		}
		if len(short) > 0 {
			return &domain.InsufficientStockError{Lines: short}
		}

		lines := make([]domain.OrderLine, len(in.Lines))
		for i, req := range in.Lines {
			price := decimal.Zero
			if product, ok := byID[req.ProductID]; ok {
				price = product.Price
			}
			lines[i] = domain.OrderLine{
				ProductID: req.ProductID,
				Quantity:  req.Quantity,
				UnitPrice: price,
			}
		}

		order := domain.Order{
			ID:         newID(),
			CustomerID: in.CustomerID,
			Lines:      lines,
			CreatedAt:  s.clock.Now(),
		}
		if err := s.ledger.CreateOrder(txCtx, order); err != nil {
			return err
		}

		adjustments := make([]domain.StockAdjustment, 0, len(ids))
		for _, id := range ids {
			adjustments = append(adjustments, domain.StockAdjustment{ProductID: id, Quantity: wanted[id]})
		}
		if _, err := s.inventory.DecrementQuantities(txCtx, adjustments); err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return result, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ErrInvalidID
	}
	order, err := s.ledger.GetOrderByID(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}
	if order == nil {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return *order, nil
}

func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	if customerID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.ledger.ListOrdersByCustomer(ctx, customerID)
}

// requestedByProduct sums quantities per product so duplicate lines for the
// same product cannot jointly overdraw stock.
func requestedByProduct(lines []OrderLineRequest) map[string]int {
	wanted := make(map[string]int, len(lines))
	for _, line := range lines {
		wanted[line.ProductID] += line.Quantity
	}
	return wanted
}

func sortedIDs(wanted map[string]int) []string {
	ids := make([]string, 0, len(wanted))
	for id := range wanted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
