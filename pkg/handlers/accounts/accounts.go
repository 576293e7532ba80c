// Package accounts serves account creation and lookup.
package accounts

import (
	"net/http"

	"github.com/casey/gridline/pkg/handlers"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AccountsHandler holds the dependencies for account-related handlers.
type AccountsHandler struct {
	Store storage.ApiStore
}

// NewAccountsHandler creates a new AccountsHandler.
func NewAccountsHandler(store storage.ApiStore) *AccountsHandler {
	return &AccountsHandler{Store: store}
}

// Routes mounts the account endpoints.
func (h *AccountsHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateAccount)
	r.Get("/", h.ListAccounts)
	r.Get("/{userID}", h.GetAccount)
	r.Get("/{userID}/transactions", h.ListAccountTransactions)
}

// NewAccount is the request body for creating an account.
type NewAccount struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role" validate:"omitempty,oneof=USER ADMIN SUPER_ADMIN"`
	Balance int64  `json:"balance" validate:"gte=0"`
}

// CreateAccount handles the logic for creating a new account.
func (h *AccountsHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req NewAccount
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	role := models.RoleUser
	if req.Role != "" {
		role = models.Role(req.Role)
	}

	account, err := h.Store.CreateAccount(r.Context(), &models.Account{
		UserId:  uuid.New().String(),
		Name:    req.Name,
		Role:    role,
		Balance: req.Balance,
	})
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, account)
}

// GetAccount handles the logic for retrieving an account by its user ID.
func (h *AccountsHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.Store.GetAccount(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, account)
}

// ListAccounts handles the logic for retrieving all accounts.
func (h *AccountsHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Store.ListAccounts(r.Context())
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, accounts)
}

// ListAccountTransactions retrieves the account's full audit trail.
func (h *AccountsHandler) ListAccountTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.Store.ListTransactionsByUserID(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, txs)
}
