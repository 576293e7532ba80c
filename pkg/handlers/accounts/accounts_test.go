package accounts

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/storage"
	storage_mocks "github.com/casey/gridline/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(mockStore *storage_mocks.Storage) *chi.Mux {
	handler := NewAccountsHandler(mockStore)

	router := chi.NewRouter()
	router.Route("/accounts", handler.Routes)
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

func TestCreateAccountHandler(t *testing.T) {
	t.Run("Defaults To User Role", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
			return a.Name == "Alice" && a.Role == models.RoleUser && a.UserId != ""
		})).Return(&models.Account{UserId: "u1", Name: "Alice", Role: models.RoleUser}, nil)

		rr := doRequest(router, http.MethodPost, "/accounts", NewAccount{Name: "Alice"})

		assert.Equal(t, http.StatusCreated, rr.Code)
		mockStore.AssertExpectations(t)
	})

	t.Run("Admin Role Honored", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("CreateAccount", mock.Anything, mock.MatchedBy(func(a *models.Account) bool {
			return a.Role == models.RoleAdmin
		})).Return(&models.Account{UserId: "u1", Role: models.RoleAdmin}, nil)

		rr := doRequest(router, http.MethodPost, "/accounts", NewAccount{Name: "Root", Role: "ADMIN"})

		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Unknown Role Fails Validation", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/accounts", NewAccount{Name: "Alice", Role: "OVERLORD"})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "CreateAccount")
	})
}

func TestGetAccountHandler(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetAccount", mock.Anything, "u1").Return(&models.Account{UserId: "u1", Balance: 5000}, nil)

		rr := doRequest(router, http.MethodGet, "/accounts/u1", nil)

		assert.Equal(t, http.StatusOK, rr.Code)

		var account models.Account
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &account))
		assert.Equal(t, int64(5000), account.Balance)
	})

	t.Run("Not Found", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetAccount", mock.Anything, "missing").Return(nil, storage.ErrNotFound)

		rr := doRequest(router, http.MethodGet, "/accounts/missing", nil)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestListAccountTransactions(t *testing.T) {
	mockStore := new(storage_mocks.Storage)
	router := newTestRouter(mockStore)

	mockStore.On("ListTransactionsByUserID", mock.Anything, "u1").Return([]models.Transaction{
		{Id: "tx1", UserId: "u1", Amount: 1000},
		{Id: "tx2", UserId: "u1", Amount: 2500},
	}, nil)

	rr := doRequest(router, http.MethodGet, "/accounts/u1/transactions", nil)

	assert.Equal(t, http.StatusOK, rr.Code)

	var txs []models.Transaction
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &txs))
	assert.Len(t, txs, 2)
}
