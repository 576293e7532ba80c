package admin

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/notifications"
	storage_mocks "github.com/casey/gridline/pkg/storage/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestRouter(mockStore *storage_mocks.Storage) *chi.Mux {
	notifier := &notifications.NoOpNotifier{}
	workflow := ledger.NewApprovalWorkflow(mockStore, mockStore, mockStore, notifier)
	ldg := ledger.NewService(mockStore, mockStore, mockStore, notifier)
	handler := NewAdminHandler(workflow, ldg)

	router := chi.NewRouter()
	router.Route("/admin", handler.Routes)
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

func TestCompleteTransactionHandler(t *testing.T) {
	t.Run("Settled", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		pending := &models.Transaction{Id: "tx1", UserId: "alice", Type: models.Deposit, Amount: 5000, Status: models.PENDING}
		settled := &models.Transaction{Id: "tx1", UserId: "alice", Type: models.Deposit, Amount: 5000, Status: models.COMPLETED}

		mockStore.On("GetAccount", mock.Anything, "admin1").Return(&models.Account{UserId: "admin1", Role: models.RoleAdmin}, nil)
		mockStore.On("GetTransaction", mock.Anything, "tx1").Return(pending, nil)
		mockStore.On("CompleteTransaction", mock.Anything, "tx1", int64(5000), "admin1").Return(settled, nil)

		rr := doRequest(router, http.MethodPost, "/admin/transactions/tx1/complete", CompleteRequest{AdminID: "admin1"})

		assert.Equal(t, http.StatusOK, rr.Code)

		var tx models.Transaction
		assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &tx))
		assert.Equal(t, models.COMPLETED, tx.Status)
	})

	t.Run("Non Admin Is Forbidden", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		mockStore.On("GetAccount", mock.Anything, "mallory").Return(&models.Account{UserId: "mallory", Role: models.RoleUser}, nil)

		rr := doRequest(router, http.MethodPost, "/admin/transactions/tx1/complete", CompleteRequest{AdminID: "mallory"})

		assert.Equal(t, http.StatusForbidden, rr.Code)
		mockStore.AssertNotCalled(t, "CompleteTransaction")
	})

	t.Run("Missing Admin Fails Validation", func(t *testing.T) {
		mockStore := new(storage_mocks.Storage)
		router := newTestRouter(mockStore)

		rr := doRequest(router, http.MethodPost, "/admin/transactions/tx1/complete", CompleteRequest{})

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		mockStore.AssertNotCalled(t, "GetAccount")
	})
}

func TestRejectTransactionHandler(t *testing.T) {
	mockStore := new(storage_mocks.Storage)
	router := newTestRouter(mockStore)

	pending := &models.Transaction{Id: "tx1", UserId: "alice", Type: models.Withdrawal, Amount: 5000, Status: models.PENDING}

	mockStore.On("GetAccount", mock.Anything, "admin1").Return(&models.Account{UserId: "admin1", Role: models.RoleAdmin}, nil)
	mockStore.On("GetTransaction", mock.Anything, "tx1").Return(pending, nil)
	mockStore.On("UpdateTransactionStatus", mock.Anything, "tx1", models.PENDING, models.FAILED, "document mismatch", "admin1").Return(nil)

	rr := doRequest(router, http.MethodPost, "/admin/transactions/tx1/reject", StatusRequest{AdminID: "admin1", Reason: "document mismatch"})

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockStore.AssertExpectations(t)
}

func TestCreateAdjustmentHandler(t *testing.T) {
	mockStore := new(storage_mocks.Storage)
	router := newTestRouter(mockStore)

	mockStore.On("GetAccount", mock.Anything, "admin1").Return(&models.Account{UserId: "admin1", Role: models.RoleAdmin}, nil)
	mockStore.On("CreateCompletedTransaction", mock.Anything, mock.MatchedBy(func(tx *models.Transaction) bool {
		return tx.Type == models.AdminAdjustment && tx.Amount == 500 && tx.AdminId == "admin1"
	})).Return(&models.Transaction{Id: "adj1", Type: models.AdminAdjustment, Amount: 500, Status: models.COMPLETED}, nil)

	rr := doRequest(router, http.MethodPost, "/admin/adjustments", AdjustmentRequest{
		AdminID: "admin1",
		UserID:  "alice",
		Amount:  500,
		Reason:  "goodwill",
	})

	assert.Equal(t, http.StatusCreated, rr.Code)
	mockStore.AssertExpectations(t)
}
