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

const payoutGameGSI = "game_id-index"

// RecordPayout writes the period's payout record and the winner's credit in
// one DynamoDB transaction. The payout key encodes (game, period), so the
// insert-if-absent put is the per-period idempotency guard: a second
// settlement run for the same period cancels the whole write and the winner
// cannot be credited twice.
func (s *Store) RecordPayout(ctx context.Context, payout *models.SquaresPayout, creditTx *models.Transaction) error {
	// 1. Get the winner's account for optimistic locking.
	account, err := s.GetAccount(ctx, creditTx.UserId)
	if err != nil {
		return fmt.Errorf("failed to get winner's account: %w", err)
	}

	// 2. Fix audit fields.
	now := time.Now()
	payout.CreatedAt = now
	payout.TransactionId = creditTx.Id
	creditTx.Status = models.COMPLETED
	creditTx.BalanceBefore = account.Balance
	creditTx.BalanceAfter = account.Balance + creditTx.Amount
	creditTx.CreatedAt = now
	creditTx.CompletedAt = &now

	payoutAV, err := attributevalue.MarshalMap(payout)
	if err != nil {
		return fmt.Errorf("failed to marshal payout: %w", err)
	}
	txAV, err := attributevalue.MarshalMap(creditTx)
	if err != nil {
		return fmt.Errorf("failed to marshal credit transaction: %w", err)
	}

	// 3. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Record the payout, once per (game, period).
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Payouts),
					Item:                payoutAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Credit the winner.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Accounts),
					Key: map[string]types.AttributeValue{
						"user_id": &types.AttributeValueMemberS{Value: creditTx.UserId},
					},
					UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
					ConditionExpression: aws.String("version = :version"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount":  &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", creditTx.Amount)},
						":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
						":inc":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
			{
				// Operation 3: Create the credit record.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Transactions),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 4. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, reason := range tce.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				switch i {
				case 0:
					return storage.ErrPayoutExists
				case 1:
					return storage.ErrVersionConflict
				default:
					return storage.ErrDuplicateTransaction
				}
			}
		}
		return fmt.Errorf("failed to execute payout transaction: %w", err)
	}

	return nil
}

// ListPayoutsByGame retrieves every recorded payout for a game.
func (s *Store) ListPayoutsByGame(ctx context.Context, gameID string) ([]models.SquaresPayout, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Payouts),
		IndexName:              aws.String(payoutGameGSI),
		KeyConditionExpression: aws.String("game_id = :gameID"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":gameID": &types.AttributeValueMemberS{Value: gameID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query payouts by game: %w", err)
	}

	var payouts []models.SquaresPayout
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &payouts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payouts: %w", err)
	}

	return payouts, nil
}
