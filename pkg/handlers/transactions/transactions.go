// Package transactions serves the user-facing transaction endpoints:
// deposit and withdrawal requests plus lookups. Settlement lives under the
// admin handlers.
package transactions

import (
	"net/http"

	"github.com/casey/gridline/pkg/handlers"
	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// TransactionsHandler holds the dependencies for transaction-related handlers.
type TransactionsHandler struct {
	Store  storage.ApiStore
	Ledger *ledger.Service
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(store storage.ApiStore, ldg *ledger.Service) *TransactionsHandler {
	return &TransactionsHandler{Store: store, Ledger: ldg}
}

// Routes mounts the transaction endpoints.
func (h *TransactionsHandler) Routes(r chi.Router) {
	r.Post("/deposits", h.CreateDeposit)
	r.Post("/withdrawals", h.CreateWithdrawal)
	r.Get("/{transactionID}", h.GetTransactionById)
}

// NewFundingRequest is the request body for deposits and withdrawals.
type NewFundingRequest struct {
	UserID          string `json:"user_id" validate:"required"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	PaymentMethodID string `json:"payment_method_id" validate:"required"`
}

// CreateDeposit opens a PENDING deposit for admin settlement.
func (h *TransactionsHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req NewFundingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.Ledger.CreateDeposit(r.Context(), req.UserID, req.Amount, req.PaymentMethodID)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, tx)
}

// CreateWithdrawal opens a PENDING withdrawal for admin settlement.
func (h *TransactionsHandler) CreateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req NewFundingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.Ledger.CreateWithdrawal(r.Context(), req.UserID, req.Amount, req.PaymentMethodID)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, tx)
}

// GetTransactionById handles the logic for retrieving a transaction by its ID.
func (h *TransactionsHandler) GetTransactionById(w http.ResponseWriter, r *http.Request) {
	tx, err := h.Store.GetTransaction(r.Context(), chi.URLParam(r, "transactionID"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, tx)
}
