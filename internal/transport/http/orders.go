package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/santanarscs/orderdesk/internal/app"
	"github.com/santanarscs/orderdesk/internal/domain"
	"github.com/shopspring/decimal"
)

// OrderPlacer is the minimal interface needed to place an order.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, in app.PlaceOrderInput) (domain.Order, error)
}

// OrderReader is the minimal interface needed to read a single order.
type OrderReader interface {
	GetOrder(ctx context.Context, id string) (domain.Order, error)
}

// HandlePlaceOrder returns an HTTP handler for placing orders.
func HandlePlaceOrder(svc OrderPlacer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req placeOrderRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if err := req.validate(); err != nil {
			writeDomainError(w, err)
			return
		}

		lines := make([]app.OrderLineRequest, len(req.Lines))
		for i, line := range req.Lines {
			lines[i] = app.OrderLineRequest{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			}
		}

		order, err := svc.PlaceOrder(r.Context(), app.PlaceOrderInput{
			CustomerID: req.CustomerID,
			Lines:      lines,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(orderResponseFrom(order))
	}
}

// HandleGetOrder returns an HTTP handler for fetching one order by id.
func HandleGetOrder(svc OrderReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		orderID, ok := parseOrderPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		order, err := svc.GetOrder(r.Context(), orderID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(orderResponseFrom(order))
	}
}

func parseOrderPath(path string) (string, bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) != 2 || parts[0] != "orders" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

type placeOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	Lines      []orderLineRequest `json:"lines"`
}

type orderLineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

func (r placeOrderRequest) validate() error {
	if r.CustomerID == "" {
		return domain.ErrInvalidID
	}
	if len(r.Lines) == 0 {
		return domain.ErrEmptyOrder
	}
	for _, line := range r.Lines {
		if line.ProductID == "" {
			return domain.ErrInvalidID
		}
		if line.Quantity <= 0 {
			return domain.ErrInvalidQuantity
		}
	}
	return nil
}

type orderLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Lines      []orderLineResponse `json:"lines"`
	Total      decimal.Decimal     `json:"total"`
	CreatedAt  time.Time           `json:"created_at"`
}

func orderResponseFrom(order domain.Order) orderResponse {
	lines := make([]orderLineResponse, len(order.Lines))
	for i, line := range order.Lines {
		lines[i] = orderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}
	return orderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Lines:      lines,
		Total:      order.Total(),
		CreatedAt:  order.CreatedAt,
	}
}
