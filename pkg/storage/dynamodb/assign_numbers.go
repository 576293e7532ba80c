package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/storage"
)

// AssignNumbers persists the two axis permutations and locks the grid.
// The numbers_assigned flag is the one-way latch: the first writer wins and
// every later call fails the condition, which callers treat as success.
func (s *Store) AssignNumbers(ctx context.Context, gameID string, rowNumbers, colNumbers []int) error {
	if len(rowNumbers) != 10 || len(colNumbers) != 10 {
		return fmt.Errorf("axis permutations must each have 10 numbers")
	}

	rowsAV, err := attributevalue.Marshal(rowNumbers)
	if err != nil {
		return fmt.Errorf("failed to marshal row numbers: %w", err)
	}
	colsAV, err := attributevalue.Marshal(colNumbers)
	if err != nil {
		return fmt.Errorf("failed to marshal col numbers: %w", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Games),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: gameID},
		},
		UpdateExpression: aws.String(
			"SET numbers_assigned = :assigned, row_numbers = :rows, col_numbers = :cols, " +
				"#status = :locked, version = version + :inc"),
		ConditionExpression: aws.String("attribute_exists(id) AND numbers_assigned = :unassigned"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":assigned":   &types.AttributeValueMemberBOOL{Value: true},
			":unassigned": &types.AttributeValueMemberBOOL{Value: false},
			":rows":       rowsAV,
			":cols":       colsAV,
			":locked":     &types.AttributeValueMemberS{Value: string(models.GameLocked)},
			":inc":        &types.AttributeValueMemberN{Value: "1"},
		},
	}

	_, err = s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return storage.ErrNumbersAssigned
		}
		return fmt.Errorf("failed to assign grid numbers: %w", err)
	}

	return nil
}
