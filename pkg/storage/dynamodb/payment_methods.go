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

// GetPaymentMethod retrieves a payment method from DynamoDB by its ID.
func (s *Store) GetPaymentMethod(ctx context.Context, methodID string) (*models.PaymentMethod, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": methodID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payment method ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.PaymentMethods),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment method from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("payment method with ID %s: %w", methodID, storage.ErrNotFound)
	}

	var method models.PaymentMethod
	if err := attributevalue.UnmarshalMap(result.Item, &method); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payment method: %w", err)
	}

	return &method, nil
}

// VerifyPaymentMethod marks a payment method as verified.
func (s *Store) VerifyPaymentMethod(ctx context.Context, methodID string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.PaymentMethods),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: methodID},
		},
		UpdateExpression:    aws.String("SET verified = :true"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true": &types.AttributeValueMemberBOOL{Value: true},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("payment method with ID %s: %w", methodID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to verify payment method: %w", err)
	}

	return nil
}

// UpdateLastUsed stamps the payment method's last-used time.
func (s *Store) UpdateLastUsed(ctx context.Context, methodID string) error {
	nowAV, err := attributevalue.Marshal(time.Now())
	if err != nil {
		return fmt.Errorf("failed to marshal last-used timestamp: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.PaymentMethods),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: methodID},
		},
		UpdateExpression:    aws.String("SET last_used_at = :now"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":now": nowAV,
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("payment method with ID %s: %w", methodID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to update payment method last-used time: %w", err)
	}

	return nil
}
