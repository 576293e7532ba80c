package games

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/squares"
	"github.com/casey/gridline/pkg/storage"
	storage_mocks "github.com/casey/gridline/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(mockStore *storage_mocks.Storage) *chi.Mux {
	notifier := &notifications.NoOpNotifier{}
	ldg := ledger.NewService(mockStore, mockStore, mockStore, notifier)
	engine := squares.NewEngine(mockStore, mockStore, ldg, nil, notifier)
	handler := NewGamesHandler(mockStore, engine, mockStore)

	router := chi.NewRouter()
	router.Route("/games", handler.Routes)
	return router
}

func doRequest(router *chi.Mux, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestCreateGameHandler(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		created := &models.SquaresGame{Id: "game1", Status: models.GameSetup}
		mockStore.On("CreateGame", mock.Anything, mock.AnythingOfType("*models.SquaresGame")).Return(created, nil)

		rr := doRequest(router, http.MethodPost, "/games", NewGame{
			Name:            "Championship",
			PricePerSquare:  1000,
			Period1Fraction: 0.15,
			Period2Fraction: 0.25,
			Period3Fraction: 0.15,
			Period4Fraction: 0.45,
			EventStartTime:  "2026-09-13T18:00:00Z",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Bad Fractions", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/games", NewGame{
			Name:            "Championship",
			PricePerSquare:  1000,
			Period1Fraction: 0.5,
			Period2Fraction: 0.5,
			Period3Fraction: 0.5,
			Period4Fraction: 0.5,
			EventStartTime:  "2026-09-13T18:00:00Z",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateGame")
	})

	t.Run("Bad Timestamp", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/games", NewGame{
			Name:            "Championship",
			PricePerSquare:  1000,
			Period1Fraction: 0.25,
			Period2Fraction: 0.25,
			Period3Fraction: 0.25,
			Period4Fraction: 0.25,
			EventStartTime:  "next sunday",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestPurchaseSquaresHandler(t *testing.T) {
	openGame := func() *models.SquaresGame {
		return &models.SquaresGame{Id: "game1", PricePerSquare: 1000, Status: models.GameActive, Version: 1}
	}

	purchaseBody := NewPurchase{
		UserID:    "alice",
		OwnerName: "Alice",
		Squares:   []Cell{{Row: 3, Col: 4}, {Row: 5, Col: 6}},
	}

	t.Run("Created", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetGame", mock.Anything, "game1").Return(openGame(), nil)
		mockStore.On("PurchaseSquares", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		mockStore.On("AcceptInvitation", mock.Anything, "game1", "alice").Return(storage.ErrNotFound)

		rr := doRequest(router, http.MethodPost, "/games/game1/purchases", purchaseBody)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var tx models.Transaction
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
		assert.Equal(t, int64(2000), tx.Amount)
	})

	t.Run("Square Taken Maps To Conflict", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetGame", mock.Anything, "game1").Return(openGame(), nil)
		mockStore.On("PurchaseSquares", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrSquareTaken)

		rr := doRequest(router, http.MethodPost, "/games/game1/purchases", purchaseBody)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("Insufficient Funds Maps To Unprocessable", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetGame", mock.Anything, "game1").Return(openGame(), nil)
		mockStore.On("PurchaseSquares", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ErrInsufficientFunds)

		rr := doRequest(router, http.MethodPost, "/games/game1/purchases", purchaseBody)

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Missing User Fails Validation", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/games/game1/purchases", NewPurchase{
			OwnerName: "Alice",
			Squares:   []Cell{{Row: 3, Col: 4}},
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "GetGame")
	})
}

func TestSubmitScoresHandler(t *testing.T) {
	identity := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	liveGame := &models.SquaresGame{
		Id:              "game1",
		TotalPot:        100000,
		Status:          models.GameLive,
		NumbersAssigned: true,
		RowNumbers:      identity,
		ColNumbers:      identity,
		PayoutStructure: models.PayoutStructure{Period1: 0.15, Period2: 0.25, Period3: 0.15, Period4: 0.45},
	}

	t.Run("Winner Paid", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetGame", mock.Anything, "game1").Return(liveGame, nil)
		mockStore.On("ListPurchasesByGame", mock.Anything, "game1").Return([]models.SquaresPurchase{
			{Id: "game1#7#3", UserId: "alice", GridRow: 7, GridCol: 3},
		}, nil)
		mockStore.On("RecordPayout", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		rr := doRequest(router, http.MethodPost, "/games/game1/scores", NewScores{Period: "PERIOD_1", HomeScore: 17, AwayScore: 23})

		assert.Equal(t, http.StatusCreated, rr.Code)

		var payout models.SquaresPayout
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payout))
		assert.Equal(t, int64(14550), payout.Amount)
	})

	t.Run("No Winner Is No Content", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetGame", mock.Anything, "game1").Return(liveGame, nil)
		mockStore.On("ListPurchasesByGame", mock.Anything, "game1").Return([]models.SquaresPurchase{}, nil)

		rr := doRequest(router, http.MethodPost, "/games/game1/scores", NewScores{Period: "PERIOD_1", HomeScore: 17, AwayScore: 23})

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Unknown Period Is Bad Request", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/games/game1/scores", NewScores{Period: "PERIOD_9", HomeScore: 17, AwayScore: 23})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestCancelGameHandler(t *testing.T) {
	mockStore := new(storage_mocks.Storage)
	router := newTestRouter(mockStore)

	mockStore.On("UpdateGameStatus", mock.Anything, "game1", mock.Anything, models.GameCancelled, "postponed").Return(nil)
	mockStore.On("ListPurchasesByGame", mock.Anything, "game1").Return([]models.SquaresPurchase{
		{UserId: "alice", Amount: 1000},
	}, nil)
	mockStore.On("CreateCompletedTransaction", mock.Anything, mock.AnythingOfType("*models.Transaction")).
		Return(&models.Transaction{Id: "refund#game1#alice", Amount: 1000, Status: models.COMPLETED}, nil)

	rr := doRequest(router, http.MethodPost, "/games/game1/cancel", CancelRequest{Reason: "postponed"})

	assert.Equal(t, http.StatusOK, rr.Code)

	var refunds []models.Transaction
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &refunds))
	assert.Len(t, refunds, 1)
}
