package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/santanarscs/orderdesk/internal/app"
	"github.com/santanarscs/orderdesk/internal/domain"
)

// CustomerService is the minimal interface needed for customer endpoints.
type CustomerService interface {
	CreateCustomer(ctx context.Context, in app.CreateCustomerInput) (domain.Customer, error)
	GetCustomer(ctx context.Context, id string) (domain.Customer, error)
}

// CustomerOrderLister lists a customer's placed orders.
type CustomerOrderLister interface {
	ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error)
}

// HandleCreateCustomer returns an HTTP handler for registering customers.
func HandleCreateCustomer(svc CustomerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		var req createCustomerRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}

		customer, err := svc.CreateCustomer(r.Context(), app.CreateCustomerInput{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(customerResponseFrom(customer))
	}
}

// HandleCustomer returns an HTTP handler for /customers/{id} and
// /customers/{id}/orders.
func HandleCustomer(svc CustomerService, orders CustomerOrderLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		customerID, wantOrders, ok := parseCustomerPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if wantOrders {
			list, err := orders.ListCustomerOrders(r.Context(), customerID)
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]orderResponse, 0, len(list))
			for _, order := range list {
				resp = append(resp, orderResponseFrom(order))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)
			return
		}

		customer, err := svc.GetCustomer(r.Context(), customerID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(customerResponseFrom(customer))
	}
}

func parseCustomerPath(path string) (id string, wantOrders, ok bool) {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case len(parts) == 2 && parts[0] == "customers" && parts[1] != "":
		return parts[1], false, true
	case len(parts) == 3 && parts[0] == "customers" && parts[1] != "" && parts[2] == "orders":
		return parts[1], true, true
	default:
		return "", false, false
	}
}

type createCustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type customerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func customerResponseFrom(customer domain.Customer) customerResponse {
	return customerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Email:     customer.Email,
		CreatedAt: customer.CreatedAt,
	}
}
