package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/santanarscs/orderdesk/internal/app"
	"github.com/santanarscs/orderdesk/internal/clock"
	"github.com/santanarscs/orderdesk/internal/storage/postgres"
	"github.com/santanarscs/orderdesk/internal/testutil"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func TestPlaceOrder_HTTPIntegration(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	txm := postgres.NewTxManager(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	svc := app.NewOrderService(txm, customerRepo, productRepo, orderRepo, clock.NewSystem())

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	customerID := testutil.InsertCustomer(t, ctx, pool, "Ana", "ana@example.com")
	productID := testutil.InsertProduct(t, ctx, pool, "Mug", decimal.RequireFromString("2.50"), 10)

	handler := HandlePlaceOrder(svc)

	body := `{"customer_id":"` + customerID + `","lines":[{"product_id":"` + productID + `","quantity":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp orderResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Lines) != 1 || resp.Lines[0].Quantity != 3 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.Lines[0].UnitPrice.Equal(decimal.RequireFromString("2.50")) {
		t.Fatalf("expected unit price 2.50, got %s", resp.Lines[0].UnitPrice)
	}
	if !resp.Total.Equal(decimal.RequireFromString("7.50")) {
		t.Fatalf("expected total 7.50, got %s", resp.Total)
	}

	if got := testutil.ProductQuantity(t, ctx, pool, productID); got != 7 {
		t.Fatalf("expected quantity 7 after order, got %d", got)
	}

	// Fetch it back through the read endpoint.
	getReq := httptest.NewRequest(http.MethodGet, "/orders/"+resp.ID, nil)
	getRec := httptest.NewRecorder()
	HandleGetOrder(svc).ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", getRec.Code)
	}
}

func TestPlaceOrder_HTTPIntegration_InsufficientStock(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	txm := postgres.NewTxManager(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	svc := app.NewOrderService(txm, customerRepo, productRepo, orderRepo, clock.NewSystem())

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	customerID := testutil.InsertCustomer(t, ctx, pool, "Ana", "ana@example.com")
	productID := testutil.InsertProduct(t, ctx, pool, "Mug", decimal.RequireFromString("2.50"), 3)

	handler := HandlePlaceOrder(svc)

	// Requesting exactly the remaining stock is insufficient.
	body := `{"customer_id":"` + customerID + `","lines":[{"product_id":"` + productID + `","quantity":3}]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Code != codeInsufficientStock {
		t.Fatalf("expected code %s, got %s", codeInsufficientStock, resp.Code)
	}

	if got := testutil.ProductQuantity(t, ctx, pool, productID); got != 3 {
		t.Fatalf("expected quantity unchanged at 3, got %d", got)
	}
	if got := testutil.CountOrders(t, ctx, pool); got != 0 {
		t.Fatalf("expected no orders, got %d", got)
	}
}

func TestPlaceOrder_HTTPIntegration_ConcurrentOverlap(t *testing.T) {
	pool := testutil.NewTestPool(t)
	testutil.ApplyMigrations(t, context.Background(), pool)

	txm := postgres.NewTxManager(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	svc := app.NewOrderService(txm, customerRepo, productRepo, orderRepo, clock.NewSystem())

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	customerID := testutil.InsertCustomer(t, ctx, pool, "Ana", "ana@example.com")
	productID := testutil.InsertProduct(t, ctx, pool, "Mug", decimal.RequireFromString("2.50"), 5)

	handler := HandlePlaceOrder(svc)
	body := `{"customer_id":"` + customerID + `","lines":[{"product_id":"` + productID + `","quantity":4}]}`

	codes := make([]int, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		i := i
		g.Go(func() error {
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			codes[i] = rec.Code
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}

	var created, conflicted int
	for _, code := range codes {
		switch code {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status %d", code)
		}
	}
	if created != 1 || conflicted != 1 {
		t.Fatalf("expected exactly one success and one conflict, got %v", codes)
	}

	remaining := testutil.ProductQuantity(t, ctx, pool, productID)
	if remaining != 1 {
		t.Fatalf("expected quantity 1 after one accepted order, got %d", remaining)
	}
	if got := testutil.CountOrders(t, ctx, pool); got != 1 {
		t.Fatalf("expected exactly one order, got %d", got)
	}
}
