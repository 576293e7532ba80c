package dynamodb

import (
	"context"
	"strings"
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

func TestCreateGame(t *testing.T) {
	t.Run("Assigns Id And Version", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("PutItem", mock.Anything, mock.Anything).Return(&dynamodb.PutItemOutput{}, nil)

		game, err := store.CreateGame(context.Background(), &models.SquaresGame{Name: "Championship", Status: models.GameSetup})

		assert.NoError(t, err)
		assert.NotEmpty(t, game.Id)
		assert.Equal(t, int64(1), game.Version)
	})
}

func TestGetGame(t *testing.T) {
	t.Run("Not Found", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.GetGame(context.Background(), "missing")

		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		gameAV, _ := attributevalue.MarshalMap(&models.SquaresGame{Id: "game1", Status: models.GameActive})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: gameAV}, nil)

		game, err := store.GetGame(context.Background(), "game1")

		assert.NoError(t, err)
		assert.Equal(t, "game1", game.Id)
	})
}

func TestUpdateGameStatus(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		// A plain transition must not touch cancel_reason.
		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			return !strings.Contains(*input.UpdateExpression, "cancel_reason")
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.UpdateGameStatus(context.Background(), "game1", []models.GameStatus{models.GameSetup}, models.GameActive, "")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Cancel Records The Reason", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.MatchedBy(func(input *dynamodb.UpdateItemInput) bool {
			reason, ok := input.ExpressionAttributeValues[":reason"].(*types.AttributeValueMemberS)
			return strings.Contains(*input.UpdateExpression, "cancel_reason") && ok && reason.Value == "postponed"
		})).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.UpdateGameStatus(context.Background(), "game1",
			[]models.GameStatus{models.GameSetup, models.GameActive, models.GameLocked, models.GameLive},
			models.GameCancelled, "postponed")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Cancel Loses Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.UpdateGameStatus(context.Background(), "game1",
			[]models.GameStatus{models.GameSetup, models.GameActive, models.GameLocked, models.GameLive},
			models.GameCancelled, "postponed")

		assert.ErrorIs(t, err, storage.ErrGameNotCancellable)
	})

	t.Run("Other Transition Loses Condition", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.UpdateGameStatus(context.Background(), "game1", []models.GameStatus{models.GameLive}, models.GameResolved, "")

		assert.ErrorIs(t, err, storage.ErrInvalidTransition)
	})

	t.Run("No Source Statuses", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		err := store.UpdateGameStatus(context.Background(), "game1", nil, models.GameActive, "")

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "UpdateItem")
	})
}

func TestAssignNumbers(t *testing.T) {
	perm := []int{3, 1, 4, 0, 5, 9, 2, 6, 8, 7}

	t.Run("First Writer Wins", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{}, nil)

		err := store.AssignNumbers(context.Background(), "game1", perm, perm)

		assert.NoError(t, err)
	})

	t.Run("Second Writer Fails The Latch", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		err := store.AssignNumbers(context.Background(), "game1", perm, perm)

		assert.ErrorIs(t, err, storage.ErrNumbersAssigned)
	})

	t.Run("Short Permutation Rejected", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		err := store.AssignNumbers(context.Background(), "game1", []int{1, 2, 3}, perm)

		assert.Error(t, err)
		mockClient.AssertNotCalled(t, "UpdateItem")
	})
}

func TestRecordPayout(t *testing.T) {
	winner := &models.Account{UserId: "alice", Balance: 1000, Version: 2}
	payout := func() *models.SquaresPayout {
		return &models.SquaresPayout{Id: "game1#PERIOD_1", GameId: "game1", Period: models.Period1, WinnerUserId: "alice", Amount: 14550, GrossAmount: 15000}
	}
	credit := func() *models.Transaction {
		return &models.Transaction{Id: "payout#game1#PERIOD_1", UserId: "alice", Type: models.SquaresPayoutType, Amount: 14550}
	}

	mockWinnerRead := func(mockClient *mocks.DynamoDBAPI) {
		winnerAV, _ := attributevalue.MarshalMap(winner)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: winnerAV}, nil)
	}

	t.Run("Credits The Winner Once", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockWinnerRead(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 3
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		tx := credit()
		err := store.RecordPayout(context.Background(), payout(), tx)

		assert.NoError(t, err)
		assert.Equal(t, int64(1000), tx.BalanceBefore)
		assert.Equal(t, int64(15550), tx.BalanceAfter)
	})

	t.Run("Duplicate Period", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockWinnerRead(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(0))

		err := store.RecordPayout(context.Background(), payout(), credit())

		assert.ErrorIs(t, err, storage.ErrPayoutExists)
	})

	t.Run("Concurrent Winner Balance Write", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := New(mockClient, testTables())

		mockWinnerRead(mockClient)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, canceled(1))

		err := store.RecordPayout(context.Background(), payout(), credit())

		assert.ErrorIs(t, err, storage.ErrVersionConflict)
	})
}
