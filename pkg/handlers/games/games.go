// Package games serves the squares-game endpoints: game lifecycle, square
// purchases, score settlement, and invitations.
package games

import (
	"net/http"
	"time"

	"github.com/casey/gridline/pkg/handlers"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/squares"
	"github.com/casey/gridline/pkg/storage"
	"github.com/go-chi/chi/v5"
)

// GamesHandler holds the dependencies for game-related handlers.
type GamesHandler struct {
	Store   storage.ApiStore
	Engine  *squares.Engine
	Invites storage.InvitationStore
}

// NewGamesHandler creates a new GamesHandler.
func NewGamesHandler(store storage.ApiStore, engine *squares.Engine, invites storage.InvitationStore) *GamesHandler {
	return &GamesHandler{Store: store, Engine: engine, Invites: invites}
}

// Routes mounts the game endpoints.
func (h *GamesHandler) Routes(r chi.Router) {
	r.Post("/", h.CreateGame)
	r.Get("/", h.ListGames)
	r.Get("/{gameID}", h.GetGame)
	r.Post("/{gameID}/open", h.OpenGame)
	r.Post("/{gameID}/purchases", h.PurchaseSquares)
	r.Get("/{gameID}/purchases", h.ListPurchases)
	r.Post("/{gameID}/lock", h.LockGrid)
	r.Post("/{gameID}/scores", h.SubmitScores)
	r.Get("/{gameID}/payouts", h.ListPayouts)
	r.Post("/{gameID}/resolve", h.ResolveGame)
	r.Post("/{gameID}/cancel", h.CancelGame)
	r.Post("/{gameID}/invitations", h.InviteUser)
}

// NewGame is the request body for creating a game.
type NewGame struct {
	Name            string  `json:"name" validate:"required"`
	PricePerSquare  int64   `json:"price_per_square" validate:"required,gt=0"`
	Period1Fraction float64 `json:"period1_fraction" validate:"gte=0"`
	Period2Fraction float64 `json:"period2_fraction" validate:"gte=0"`
	Period3Fraction float64 `json:"period3_fraction" validate:"gte=0"`
	Period4Fraction float64 `json:"period4_fraction" validate:"gte=0"`
	EventStartTime  string  `json:"event_start_time" validate:"required"`
	Open            bool    `json:"open"`
}

// CreateGame handles the logic for creating a new game.
func (h *GamesHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req NewGame
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.EventStartTime)
	if err != nil {
		http.Error(w, "event_start_time must be RFC 3339", http.StatusBadRequest)
		return
	}

	game, err := h.Engine.CreateGame(r.Context(), squares.CreateGameParams{
		Name:           req.Name,
		PricePerSquare: req.PricePerSquare,
		PayoutStructure: models.PayoutStructure{
			Period1: req.Period1Fraction,
			Period2: req.Period2Fraction,
			Period3: req.Period3Fraction,
			Period4: req.Period4Fraction,
		},
		EventStartTime: startTime,
		Open:           req.Open,
	})
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, game)
}

// GetGame handles the logic for retrieving a game by its ID.
func (h *GamesHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := h.Store.GetGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, game)
}

// ListGames lists games by status (default ACTIVE).
func (h *GamesHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	status := models.GameStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.GameActive
	}

	games, err := h.Store.ListGamesByStatus(r.Context(), status)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, games)
}

// OpenGame moves a SETUP game into ACTIVE.
func (h *GamesHandler) OpenGame(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.OpenGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		handlers.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// NewPurchase is the request body for buying squares.
type NewPurchase struct {
	UserID    string `json:"user_id" validate:"required"`
	OwnerName string `json:"owner_name" validate:"required"`
	Squares   []Cell `json:"squares" validate:"required,min=1,dive"`
}

// Cell is one requested grid coordinate.
type Cell struct {
	Row int `json:"row" validate:"gte=0,lte=9"`
	Col int `json:"col" validate:"gte=0,lte=9"`
}

// PurchaseSquares handles the logic for buying squares in a game.
func (h *GamesHandler) PurchaseSquares(w http.ResponseWriter, r *http.Request) {
	var req NewPurchase
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cells := make([]squares.Cell, len(req.Squares))
	for i, c := range req.Squares {
		cells[i] = squares.Cell{Row: c.Row, Col: c.Col}
	}

	tx, err := h.Engine.PurchaseSquares(r.Context(), chi.URLParam(r, "gameID"), req.UserID, req.OwnerName, cells)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, tx)
}

// ListPurchases handles the logic for listing a game's purchases.
func (h *GamesHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.Store.ListPurchasesByGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, purchases)
}

// LockGrid locks the grid and draws the axis numbers.
func (h *GamesHandler) LockGrid(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.LockGridAndAssignNumbers(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		handlers.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// NewScores is the request body for settling a period.
type NewScores struct {
	Period    string `json:"period" validate:"required"`
	HomeScore int    `json:"home_score" validate:"gte=0"`
	AwayScore int    `json:"away_score" validate:"gte=0"`
}

// SubmitScores settles one scoring period and pays the winner, if any.
func (h *GamesHandler) SubmitScores(w http.ResponseWriter, r *http.Request) {
	var req NewScores
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	payout, err := h.Engine.ProcessPeriodScores(r.Context(), chi.URLParam(r, "gameID"), models.Period(req.Period), req.HomeScore, req.AwayScore)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}
	if payout == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, payout)
}

// ListPayouts handles the logic for listing a game's settled periods.
func (h *GamesHandler) ListPayouts(w http.ResponseWriter, r *http.Request) {
	payouts, err := h.Store.ListPayoutsByGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, payouts)
}

// ResolveGame closes out a finished game.
func (h *GamesHandler) ResolveGame(w http.ResponseWriter, r *http.Request) {
	if err := h.Engine.ResolveGame(r.Context(), chi.URLParam(r, "gameID")); err != nil {
		handlers.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CancelRequest is the request body for cancelling a game.
type CancelRequest struct {
	Reason string `json:"reason" validate:"required"`
}

// CancelGame cancels a game and refunds every buyer.
func (h *GamesHandler) CancelGame(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	refunds, err := h.Engine.CancelGame(r.Context(), chi.URLParam(r, "gameID"), req.Reason)
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, refunds)
}

// InviteRequest is the request body for inviting a user to a game.
type InviteRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// InviteUser creates a pending invitation for a user.
func (h *GamesHandler) InviteUser(w http.ResponseWriter, r *http.Request) {
	var req InviteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.Invites.CreateInvitation(r.Context(), &models.Invitation{
		GameId: chi.URLParam(r, "gameID"),
		UserId: req.UserID,
	})
	if err != nil {
		handlers.WriteError(w, err)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, inv)
}
