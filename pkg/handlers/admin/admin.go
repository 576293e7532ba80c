// Package admin serves the admin-gated settlement endpoints. Every request
// names the acting admin; the workflow rejects non-admin callers before any
// state is touched.
package admin

import (
	"net/http"

	"github.com/casey/gridline/pkg/handlers"
	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/models"
	"github.com/go-chi/chi/v5"
)

// AdminHandler holds the dependencies for admin-gated handlers.
type AdminHandler struct {
	Workflow *ledger.ApprovalWorkflow
	Ledger   *ledger.Service
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(workflow *ledger.ApprovalWorkflow, ldg *ledger.Service) *AdminHandler {
	return &AdminHandler{Workflow: workflow, Ledger: ldg}
}

// Routes mounts the admin endpoints.
func (h *AdminHandler) Routes(r chi.Router) {
	r.Post("/transactions/{transactionID}/processing", h.MarkProcessing)
	r.Post("/transactions/{transactionID}/complete", h.CompleteTransaction)
	r.Post("/transactions/{transactionID}/reject", h.RejectTransaction)
	r.Post("/transactions/{transactionID}/cancel", h.CancelTransaction)
	r.Post("/adjustments", h.CreateAdjustment)
}

// CompleteRequest is the request body for settling a transaction.
// ActualAmount, when set, is the fee-adjusted net actually moved.
type CompleteRequest struct {
	AdminID      string `json:"admin_id" validate:"required"`
	ActualAmount int64  `json:"actual_amount" validate:"gte=0"`
}

// CompleteTransaction settles a pending deposit or withdrawal.
func (h *AdminHandler) CompleteTransaction(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.Workflow.CompleteTransaction(r.Context(), chi.URLParam(r, "transactionID"), req.AdminID, req.ActualAmount)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, tx)
}

// StatusRequest is the request body for processing/reject/cancel.
type StatusRequest struct {
	AdminID string `json:"admin_id" validate:"required"`
	Reason  string `json:"reason"`
}

// MarkProcessing moves a PENDING transaction into PROCESSING.
func (h *AdminHandler) MarkProcessing(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Workflow.MarkProcessing(r.Context(), chi.URLParam(r, "transactionID"), req.AdminID); err != nil {
		handlers.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RejectTransaction fails a pending transaction with a reason.
func (h *AdminHandler) RejectTransaction(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Workflow.RejectTransaction(r.Context(), chi.URLParam(r, "transactionID"), req.AdminID, req.Reason); err != nil {
		handlers.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelTransaction cancels a still-PENDING transaction.
func (h *AdminHandler) CancelTransaction(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Workflow.CancelTransaction(r.Context(), chi.URLParam(r, "transactionID"), req.AdminID, req.Reason); err != nil {
		handlers.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AdjustmentRequest is the request body for a manual balance correction.
type AdjustmentRequest struct {
	AdminID string `json:"admin_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Reason  string `json:"reason" validate:"required"`
}

// CreateAdjustment credits a manual correction with a full audit trail.
func (h *AdminHandler) CreateAdjustment(w http.ResponseWriter, r *http.Request) {
	var req AdjustmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.Workflow.CreateAdjustment(r.Context(), ledger.CreateParams{
		UserID:  req.UserID,
		Type:    models.AdminAdjustment,
		Amount:  req.Amount,
		Reason:  req.Reason,
		AdminID: req.AdminID,
	})
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, tx)
}
