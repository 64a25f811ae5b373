package adapter_http

import (
	"encoding/json"
	"errors"
	"net/http"

	domain_bank "github.com/PedroCamargo-dev/core-bank-accounts/internal/domain/bank"
	impl_account "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/account"
	impl_transfer "github.com/PedroCamargo-dev/core-bank-accounts/internal/impl/usecase/transfer"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, impl_account.ErrInvalidInput),
		errors.Is(err, impl_transfer.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, errBodyTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, impl_account.ErrAccountNotFound),
		errors.Is(err, impl_transfer.ErrAccountNotFound),
		errors.Is(err, impl_transfer.ErrTransferNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain_bank.ErrInsufficientFunds),
		errors.Is(err, impl_transfer.ErrIdempotencyConflict),
		errors.Is(err, impl_account.ErrAccountExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
