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
	"github.com/google/uuid"
)

// CreateCompletedTransaction atomically applies the balance effect and writes
// the transaction record. The recorded BalanceBefore/BalanceAfter are pinned
// by a version condition on the account, so a concurrent balance write cancels
// the whole operation instead of corrupting the audit trail.
func (s *Store) CreateCompletedTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	// 1. Get the current state of the account.
	account, err := s.GetAccount(ctx, tx.UserId)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	// 2. Classify and pre-check. The condition expression re-checks
	// sufficiency at write time; this check just avoids a doomed write.
	amount := tx.SettledAmount()
	if !tx.Type.IsCredit() && account.Balance < amount {
		return nil, storage.ErrInsufficientFunds
	}

	// 3. Complete the record with server-side details.
	now := time.Now()
	if tx.Id == "" {
		tx.Id = uuid.New().String()
	}
	tx.Status = models.COMPLETED
	tx.BalanceBefore = account.Balance
	if tx.Type.IsCredit() {
		tx.BalanceAfter = account.Balance + amount
	} else {
		tx.BalanceAfter = account.Balance - amount
	}
	tx.CreatedAt = now
	tx.CompletedAt = &now

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	amountAV, err := attributevalue.Marshal(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal amount: %w", err)
	}

	update := &types.Update{
		TableName: aws.String(s.Tables.Accounts),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: tx.UserId},
		},
		UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount":  amountAV,
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	}
	if !tx.Type.IsCredit() {
		update.UpdateExpression = aws.String("SET balance = balance - :amount, version = version + :inc")
		update.ConditionExpression = aws.String("balance >= :amount AND version = :version")
	}

	// 4. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Apply the balance effect.
				Update: update,
			},
			{
				// Operation 2: Create the transaction record.
				Put: &types.Put{
					TableName:           aws.String(s.Tables.Transactions),
					Item:                txAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	// 5. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return nil, s.mapBalanceCancellation(tce, !tx.Type.IsCredit())
		}
		return nil, fmt.Errorf("failed to execute transaction: %w", err)
	}

	return tx, nil
}

// CreatePendingTransaction writes a transaction record with no balance effect.
func (s *Store) CreatePendingTransaction(ctx context.Context, tx *models.Transaction) (*models.Transaction, error) {
	now := time.Now()
	if tx.Id == "" {
		tx.Id = uuid.New().String()
	}
	tx.Status = models.PENDING
	tx.CreatedAt = now

	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Transactions),
		Item:                txAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, storage.ErrDuplicateTransaction
		}
		return nil, fmt.Errorf("failed to create pending transaction: %w", err)
	}

	return tx, nil
}

// mapBalanceCancellation translates a cancelled two-item balance write
// (account update first, record put second) into a typed error. A debit's
// condition covers both sufficiency and the version lock; a concurrent spend
// is indistinguishable from a stale version there, and both mean the funds
// cannot be taken as read.
func (s *Store) mapBalanceCancellation(tce *types.TransactionCanceledException, debit bool) error {
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		switch i {
		case 0:
			if debit {
				return storage.ErrInsufficientFunds
			}
			return storage.ErrVersionConflict
		case 1:
			return storage.ErrDuplicateTransaction
		}
	}
	return fmt.Errorf("failed to execute transaction: %w", tce)
}
