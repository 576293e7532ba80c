package transactions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/storage"
	storage_mocks "github.com/casey/gridline/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(mockStore *storage_mocks.Storage) *chi.Mux {
	ldg := ledger.NewService(mockStore, mockStore, mockStore, &notifications.NoOpNotifier{})
	handler := NewTransactionsHandler(mockStore, ldg)

	router := chi.NewRouter()
	router.Route("/transactions", handler.Routes)
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

func TestCreateDepositHandler(t *testing.T) {
	t.Run("Created Pending", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetPaymentMethod", mock.Anything, "pm1").Return(&models.PaymentMethod{Id: "pm1"}, nil)
		mockStore.On("CreatePendingTransaction", mock.Anything, mock.AnythingOfType("*models.Transaction")).
			Return(&models.Transaction{Id: "tx1", Type: models.Deposit, Amount: 5000, Status: models.PENDING}, nil)

		rr := doRequest(router, http.MethodPost, "/transactions/deposits", NewFundingRequest{
			UserID:          "alice",
			Amount:          5000,
			PaymentMethodID: "pm1",
		})

		assert.Equal(t, http.StatusCreated, rr.Code)

		var tx models.Transaction
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
		assert.Equal(t, models.PENDING, tx.Status)
	})

	t.Run("Unknown Method Is Not Found", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetPaymentMethod", mock.Anything, "pm1").Return(nil, storage.ErrNotFound)

		rr := doRequest(router, http.MethodPost, "/transactions/deposits", NewFundingRequest{
			UserID:          "alice",
			Amount:          5000,
			PaymentMethodID: "pm1",
		})

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("Zero Amount Fails Validation", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/transactions/deposits", NewFundingRequest{
			UserID:          "alice",
			PaymentMethodID: "pm1",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreatePendingTransaction")
	})
}

func TestCreateWithdrawalHandler(t *testing.T) {
	t.Run("Insufficient Balance", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetPaymentMethod", mock.Anything, "pm1").Return(&models.PaymentMethod{Id: "pm1", Verified: true}, nil)
		mockStore.On("GetAccount", mock.Anything, "alice").Return(&models.Account{UserId: "alice", Balance: 100}, nil)

		rr := doRequest(router, http.MethodPost, "/transactions/withdrawals", NewFundingRequest{
			UserID:          "alice",
			Amount:          5000,
			PaymentMethodID: "pm1",
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("Unverified Method", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetPaymentMethod", mock.Anything, "pm1").Return(&models.PaymentMethod{Id: "pm1"}, nil)

		rr := doRequest(router, http.MethodPost, "/transactions/withdrawals", NewFundingRequest{
			UserID:          "alice",
			Amount:          5000,
			PaymentMethodID: "pm1",
		})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestGetTransactionById(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetTransaction", mock.Anything, "tx1").Return(&models.Transaction{Id: "tx1"}, nil)

		rr := doRequest(router, http.MethodGet, "/transactions/tx1", nil)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetTransaction", mock.Anything, "tx1").Return(nil, storage.ErrNotFound)

		rr := doRequest(router, http.MethodGet, "/transactions/tx1", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
