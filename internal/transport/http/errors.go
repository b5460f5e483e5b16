package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/santanarscs/orderdesk/internal/domain"
)

const (
	codeMethodNotAllowed      = "method_not_allowed"
	codeNotFound              = "not_found"
	codeInvalidRequestBody    = "invalid_request_body"
	codeInvalidID             = "invalid_id"
	codeInvalidQuantity       = "invalid_quantity"
	codeInvalidPrice          = "invalid_price"
	codeEmptyOrder            = "empty_order"
	codeCustomerNotFound      = "customer_not_found"
	codeProductNotFound       = "product_not_found"
	codeProductsNotFound      = "products_not_found"
	codeOrderNotFound         = "order_not_found"
	codeInsufficientStock     = "insufficient_stock"
	codeConflict              = "conflict"
	codeProductNameRequired   = "product_name_required"
	codeProductNameTaken      = "product_name_taken"
	codeCustomerNameRequired  = "customer_name_required"
	codeCustomerEmailTaken    = "customer_email_taken"
	codeCustomerEmailRequired = "customer_email_required"
	codeForbidden             = "forbidden"
	codeInternalError         = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps domain errors onto HTTP statuses and stable codes so
// callers can tell retryable rejections apart from terminal ones.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCustomerNotFound):
		writeError(w, http.StatusNotFound, codeCustomerNotFound, err.Error())
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, codeProductNotFound, err.Error())
	case errors.Is(err, domain.ErrProductsNotFound):
		writeError(w, http.StatusNotFound, codeProductsNotFound, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, codeOrderNotFound, err.Error())
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusConflict, codeInsufficientStock, err.Error())
	case errors.Is(err, domain.ErrTxConflict):
		writeError(w, http.StatusConflict, codeConflict, "placement conflicted with a concurrent order, retry")
	case errors.Is(err, domain.ErrProductNameTaken):
		writeError(w, http.StatusConflict, codeProductNameTaken, err.Error())
	case errors.Is(err, domain.ErrCustomerEmailTaken):
		writeError(w, http.StatusConflict, codeCustomerEmailTaken, err.Error())
	case errors.Is(err, domain.ErrEmptyOrder):
		writeError(w, http.StatusBadRequest, codeEmptyOrder, err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, codeInvalidQuantity, err.Error())
	case errors.Is(err, domain.ErrInvalidPrice):
		writeError(w, http.StatusBadRequest, codeInvalidPrice, err.Error())
	case errors.Is(err, domain.ErrInvalidID):
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case errors.Is(err, domain.ErrProductNameRequired):
		writeError(w, http.StatusBadRequest, codeProductNameRequired, err.Error())
	case errors.Is(err, domain.ErrCustomerNameRequired):
		writeError(w, http.StatusBadRequest, codeCustomerNameRequired, err.Error())
	case errors.Is(err, domain.ErrEmailRequired):
		writeError(w, http.StatusBadRequest, codeCustomerEmailRequired, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}
