// Package handlers holds the shared HTTP plumbing for the resource
// subpackages: JSON responses, request validation, and the mapping from
// domain errors to status codes.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/squares"
	"github.com/casey/gridline/pkg/storage"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DecodeJSON decodes the request body into v and runs struct validation.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// WriteError maps a domain error onto its HTTP status. Authorization
// failures are distinguished from every business-rule conflict.
func WriteError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}

// StatusFor returns the HTTP status for a domain error.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrSquareTaken),
		errors.Is(err, storage.ErrVersionConflict),
		errors.Is(err, storage.ErrInvalidTransition),
		errors.Is(err, storage.ErrNumbersAssigned),
		errors.Is(err, storage.ErrPayoutExists),
		errors.Is(err, storage.ErrGameNotOpen),
		errors.Is(err, storage.ErrGameNotCancellable),
		errors.Is(err, storage.ErrDuplicateTransaction):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrUnknownType),
		errors.Is(err, ledger.ErrPaymentMethodUnverified),
		errors.Is(err, squares.ErrInvalidPrice),
		errors.Is(err, squares.ErrInvalidPayoutStructure),
		errors.Is(err, squares.ErrInvalidCell),
		errors.Is(err, squares.ErrDuplicateCell),
		errors.Is(err, squares.ErrTooManySquares),
		errors.Is(err, squares.ErrNoSquares),
		errors.Is(err, squares.ErrInvalidPeriod),
		errors.Is(err, squares.ErrInvalidScore):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
