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

// CompleteTransaction performs the final atomic settlement of a pending
// deposit or withdrawal. It re-reads the live balance (not the value captured
// at creation), applies the credit/debit of settleAmount, and flips the
// record to COMPLETED, all in one store transaction. The status condition
// doubles as the idempotency guard: a second completion loses the condition.
func (s *Store) CompleteTransaction(ctx context.Context, txID string, settleAmount int64, adminID string) (*models.Transaction, error) {
	// 1. Get the transaction being settled.
	tx, err := s.GetTransaction(ctx, txID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction for settlement: %w", err)
	}
	if tx.Status.IsTerminal() {
		return nil, storage.ErrInvalidTransition
	}
	if settleAmount <= 0 {
		settleAmount = tx.Amount
	}

	// 2. Get the live account state for optimistic locking.
	account, err := s.GetAccount(ctx, tx.UserId)
	if err != nil {
		return nil, fmt.Errorf("failed to get account for settlement: %w", err)
	}

	credit := tx.Type.IsCredit()
	if !credit && account.Balance < settleAmount {
		return nil, storage.ErrInsufficientFunds
	}

	// 3. Fix the audit fields the record will carry.
	now := time.Now()
	tx.Status = models.COMPLETED
	tx.BalanceBefore = account.Balance
	if credit {
		tx.BalanceAfter = account.Balance + settleAmount
	} else {
		tx.BalanceAfter = account.Balance - settleAmount
	}
	if settleAmount != tx.Amount {
		tx.ActualAmount = settleAmount
		tx.Fee = tx.Amount - settleAmount
	}
	tx.AdminId = adminID
	tx.CompletedAt = &now

	settleAV, err := attributevalue.Marshal(settleAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settle amount: %w", err)
	}
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settlement timestamp: %w", err)
	}

	accountUpdate := &types.Update{
		TableName: aws.String(s.Tables.Accounts),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: tx.UserId},
		},
		UpdateExpression:    aws.String("SET balance = balance + :amount, version = version + :inc"),
		ConditionExpression: aws.String("version = :version"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":amount":  settleAV,
			":version": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", account.Version)},
			":inc":     &types.AttributeValueMemberN{Value: "1"},
		},
	}
	if !credit {
		accountUpdate.UpdateExpression = aws.String("SET balance = balance - :amount, version = version + :inc")
		accountUpdate.ConditionExpression = aws.String("balance >= :amount AND version = :version")
	}

	// 4. Construct the TransactWriteItems input.
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Apply the live-balance effect.
				Update: accountUpdate,
			},
			{
				// Operation 2: Flip the transaction to COMPLETED.
				Update: &types.Update{
					TableName: aws.String(s.Tables.Transactions),
					Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: tx.Id}},
					UpdateExpression: aws.String(
						"SET #status = :completed, actual_amount = :actual, fee = :fee, " +
							"balance_before = :before, balance_after = :after, " +
							"completed_at = :now, admin_id = :admin"),
					ConditionExpression: aws.String("#status = :pending OR #status = :processing"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed":  &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
						":pending":    &types.AttributeValueMemberS{Value: string(models.PENDING)},
						":processing": &types.AttributeValueMemberS{Value: string(models.PROCESSING)},
						":actual":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.ActualAmount)},
						":fee":        &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.Fee)},
						":before":     &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.BalanceBefore)},
						":after":      &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", tx.BalanceAfter)},
						":now":        nowAV,
						":admin":      &types.AttributeValueMemberS{Value: adminID},
					},
				},
			},
		},
	}

	// 5. Execute the transaction.
	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, reason := range tce.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				if i == 0 {
					if !credit {
						return nil, storage.ErrInsufficientFunds
					}
					return nil, storage.ErrVersionConflict
				}
				return nil, storage.ErrInvalidTransition
			}
		}
		return nil, fmt.Errorf("failed to execute settlement transaction: %w", err)
	}

	return tx, nil
}

// UpdateTransactionStatus performs a status-only forward transition,
// conditional on the record's current status. It never touches balances.
func (s *Store) UpdateTransactionStatus(ctx context.Context, txID string, from, to models.TransactionStatus, reason, adminID string) error {
	now := time.Now()
	nowAV, err := attributevalue.Marshal(now)
	if err != nil {
		return fmt.Errorf("failed to marshal timestamp for status update: %w", err)
	}

	updateExpr := "SET #status = :to, reason = :reason, admin_id = :admin"
	values := map[string]types.AttributeValue{
		":to":     &types.AttributeValueMemberS{Value: string(to)},
		":from":   &types.AttributeValueMemberS{Value: string(from)},
		":reason": &types.AttributeValueMemberS{Value: reason},
		":admin":  &types.AttributeValueMemberS{Value: adminID},
	}
	if to.IsTerminal() {
		updateExpr += ", completed_at = :now"
		values[":now"] = nowAV
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Transactions),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txID},
		},
		UpdateExpression:    aws.String(updateExpr),
		ConditionExpression: aws.String("#status = :from"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: values,
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrInvalidTransition
		}
		return fmt.Errorf("failed to update transaction status: %w", err)
	}

	return nil
}
