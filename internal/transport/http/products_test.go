package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/santanarscs/orderdesk/internal/app"
	"github.com/santanarscs/orderdesk/internal/domain"
	"github.com/shopspring/decimal"
)

type fakeCatalogService struct {
	createErr error
	listErr   error
	products  []domain.Product
}

func (f *fakeCatalogService) CreateProduct(_ context.Context, in app.CreateProductInput) (domain.Product, error) {
	if f.createErr != nil {
		return domain.Product{}, f.createErr
	}
	return domain.Product{ID: "p1", Name: in.Name, Price: in.Price, Quantity: in.Quantity}, nil
}

func (f *fakeCatalogService) ListProducts(_ context.Context) ([]domain.Product, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.products, nil
}

func TestHandleProducts(t *testing.T) {
	t.Parallel()

	t.Run("creates product", func(t *testing.T) {
		handler := HandleProducts(&fakeCatalogService{})

		body := `{"name":"Mug","price":"2.50","quantity":10}`
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp productResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Name != "Mug" || !resp.Price.Equal(decimal.RequireFromString("2.50")) {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("accepts numeric price", func(t *testing.T) {
		handler := HandleProducts(&fakeCatalogService{})

		body := `{"name":"Mug","price":2.5,"quantity":10}`
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("maps duplicate name to 409", func(t *testing.T) {
		handler := HandleProducts(&fakeCatalogService{createErr: domain.ErrProductNameTaken})

		body := `{"name":"Mug","price":"2.50","quantity":10}`
		req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected status 409, got %d", rec.Code)
		}
	})

	t.Run("lists products", func(t *testing.T) {
		handler := HandleProducts(&fakeCatalogService{products: []domain.Product{
			{ID: "p1", Name: "Mug", Price: decimal.RequireFromString("2.50"), Quantity: 10},
		}})

		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp []productResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if len(resp) != 1 || resp[0].Name != "Mug" {
			t.Fatalf("unexpected response: %+v", resp)
		}
	})

	t.Run("rejects other methods", func(t *testing.T) {
		handler := HandleProducts(&fakeCatalogService{})

		req := httptest.NewRequest(http.MethodDelete, "/products", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected status 405, got %d", rec.Code)
		}
	})
}
