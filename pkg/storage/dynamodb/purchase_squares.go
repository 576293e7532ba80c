package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/storage"
)

// PurchaseSquares commits a whole purchase in one DynamoDB transaction:
// one insert-if-absent put per cell, the consolidated buyer debit with its
// transaction record, and the game's pot/sold counters. There is no
// scan-then-write anywhere: an occupied cell, an insufficient balance, a
// concurrent balance write, or a no-longer-open game each cancel the entire
// batch, so no partial purchase state can persist.
func (s *Store) PurchaseSquares(ctx context.Context, game *models.SquaresGame, purchases []models.SquaresPurchase, debitTx *models.Transaction) error {
	if len(purchases) == 0 {
		return fmt.Errorf("no squares in purchase")
	}

	// 1. Get the buyer's account for optimistic locking.
	account, err := s.GetAccount(ctx, debitTx.UserId)
	if err != nil {
		return fmt.Errorf("failed to get buyer's account: %w", err)
	}
	if account.Balance < debitTx.Amount {
		return storage.ErrInsufficientFunds
	}

	// 2. Fix audit fields on the debit record.
	now := time.Now()
	debitTx.Status = models.COMPLETED
	debitTx.BalanceBefore = account.Balance
	debitTx.BalanceAfter = account.Balance - debitTx.Amount
	debitTx.CreatedAt = now
	debitTx.CompletedAt = &now

	txAV, err := attributevalue.MarshalMap(debitTx)
	if err != nil {
		return fmt.Errorf("failed to marshal debit transaction: %w", err)
	}

	items := make([]types.TransactWriteItem, 0, len(purchases)+3)

	// Operations 1..n: insert each purchase row. The row key encodes
	// (game, row, col), so attribute_not_exists is the occupancy check.
	for i := range purchases {
		purchases[i].CreatedAt = now
		purchases[i].TransactionId = debitTx.Id
		purchaseAV, err := attributevalue.MarshalMap(purchases[i])
		if err != nil {
			return fmt.Errorf("failed to marshal purchase: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.Tables.Purchases),
				Item:                purchaseAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		})
	}

	// Operation n+1: debit the buyer.
	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Accounts),
			Key: map[string]types.AttributeValue{
				"user_id": &types.AttributeValueMemberS{Value: debitTx.UserId},
			},
			UpdateExpression:    aws.String("SET balance = balance - :amount, version = version + :inc"),
			ConditionExpression: aws.String("balance >= :amount AND version = :version"),
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", debitTx.Amount)},
				":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
				":inc":     &types.AttributeValueMemberN{Value: "1"},
			},
		},
	})

	// Operation n+2: create the consolidated debit record.
	items = append(items, types.TransactWriteItem{
		Put: &types.Put{
			TableName:           aws.String(s.Tables.Transactions),
			Item:                txAV,
			ConditionExpression: aws.String("attribute_not_exists(id)"),
		},
	})

	// Operation n+3: bump the game's counters while it is still open.
	items = append(items, types.TransactWriteItem{
		Update: &types.Update{
			TableName: aws.String(s.Tables.Games),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: game.Id},
			},
			UpdateExpression: aws.String(
				"SET squares_sold = squares_sold + :n, total_pot = total_pot + :cost, version = version + :inc"),
			ConditionExpression: aws.String("(#status = :setup OR #status = :active) AND version = :gameVersion"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":n":           &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", len(purchases))},
				":cost":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", debitTx.Amount)},
				":inc":         &types.AttributeValueMemberN{Value: "1"},
				":setup":       &types.AttributeValueMemberS{Value: string(models.GameSetup)},
				":active":      &types.AttributeValueMemberS{Value: string(models.GameActive)},
				":gameVersion": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", game.Version)},
			},
		},
	})

	// 3. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, reason := range tce.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				switch {
				case i < len(purchases):
					return storage.ErrSquareTaken
				case i == len(purchases):
					return storage.ErrInsufficientFunds
				case i == len(purchases)+1:
					return storage.ErrDuplicateTransaction
				default:
					return s.mapGameCancellation(ctx, game.Id)
				}
			}
		}
		return fmt.Errorf("failed to execute purchase transaction: %w", err)
	}

	return nil
}

// mapGameCancellation disambiguates a failed game-counters write. Its
// condition covers both the open-status check and the version lock, so the
// game is re-read: a closed game is a hard refusal, anything else was a
// concurrent purchase bumping the version and the caller may retry.
func (s *Store) mapGameCancellation(ctx context.Context, gameID string) error {
	current, err := s.GetGame(ctx, gameID)
	if err != nil {
		return storage.ErrVersionConflict
	}
	if !current.Status.IsOpen() {
		return storage.ErrGameNotOpen
	}
	return storage.ErrVersionConflict
}

// ListPurchasesByGame retrieves every purchase in a game.
func (s *Store) ListPurchasesByGame(ctx context.Context, gameID string) ([]models.SquaresPurchase, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Purchases),
		IndexName:              aws.String(purchaseGameGSI),
		KeyConditionExpression: aws.String("game_id = :gameID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gameID": &types.AttributeValueMemberS{Value: gameID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases by game: %w", err)
	}

	var purchases []models.SquaresPurchase
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &purchases); err != nil {
		return nil, fmt.Errorf("failed to unmarshal purchases: %w", err)
	}

	return purchases, nil
}

const purchaseGameGSI = "game_id-index"
