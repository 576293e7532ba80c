package dynamodb

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/storage"
	"github.com/casey/gridline/pkg/storage/dynamodb/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCompleteTransaction(t *testing.T) {
	pendingDeposit := func() *models.Transaction {
		return &models.Transaction{Id: "tx1", UserId: "alice", Type: models.Deposit, Amount: 5000, Status: models.PENDING}
	}
	account := &models.Account{UserId: "alice", Balance: 1000, Version: 2}

	mockReads := func(mockClient *mocks.DynamoDBAPI, tx *models.Transaction) {
		txAV, _ := attributevalue.MarshalMap(tx)
		accountAV, _ := attributevalue.MarshalMap(account)
		// First read is the transaction, second the account.
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: txAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: accountAV}, nil)
	}

	t.Run("Settles At Face Value", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockReads(mockClient, pendingDeposit())
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		tx, err := store.CompleteTransaction(context.Background(), "tx1", 0, "admin1")

		assert.NoError(t, err)
		assert.Equal(t, models.COMPLETED, tx.Status)
		assert.Equal(t, int64(1000), tx.BalanceBefore)
		assert.Equal(t, int64(6000), tx.BalanceAfter)
		assert.Equal(t, int64(0), tx.Fee)
		assert.Equal(t, "admin1", tx.AdminId)
	})

	t.Run("Fee Adjusted Settlement", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockReads(mockClient, pendingDeposit())
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		tx, err := store.CompleteTransaction(context.Background(), "tx1", 4800, "admin1")

		assert.NoError(t, err)
		assert.Equal(t, int64(4800), tx.ActualAmount)
		assert.Equal(t, int64(200), tx.Fee)
		assert.Equal(t, int64(5800), tx.BalanceAfter)
	})

	t.Run("Terminal Transaction Cannot Settle Again", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		completed := pendingDeposit()
		completed.Status = models.COMPLETED
		txAV, _ := attributevalue.MarshalMap(completed)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: txAV}, nil)

		_, err := store.CompleteTransaction(context.Background(), "tx1", 0, "admin1")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
		mockClient.AssertNotCalled(t, "TransactWriteItems")
	})

	t.Run("Withdrawal Against Drifted Balance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		withdrawal := &models.Transaction{Id: "tx1", UserId: "alice", Type: models.Withdrawal, Amount: 5000, Status: models.PENDING}
		mockReads(mockClient, withdrawal)

		_, err := store.CompleteTransaction(context.Background(), "tx1", 0, "admin1")

		assert.ErrorIs(t, err, storage.ErrInsufficientFunds)
		mockClient.AssertNotCalled(t, "TransactWriteItems")
	})

	t.Run("Lost Settlement Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockReads(mockClient, pendingDeposit())
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(1))

		_, err := store.CompleteTransaction(context.Background(), "tx1", 0, "admin1")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	})
}

func TestUpdateTransactionStatus(t *testing.T) {
	t.Run("Conditional On Current Status", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.UpdateTransactionStatus(context.Background(), "tx1", models.PENDING, models.PROCESSING, "", "admin1")

		assert.NoError(t, err)
	})

	t.Run("Stale Status Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.UpdateTransactionStatus(context.Background(), "tx1", models.PENDING, models.CANCELLED, "user request", "admin1")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	})
}
