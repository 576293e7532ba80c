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

// invitationID keys invitations by (game, user) so there is at most one per pair.
func invitationID(gameID, userID string) string {
	return fmt.Sprintf("%s#%s", gameID, userID)
}

// CreateInvitation creates a pending invitation for a user to join a game.
func (s *Store) CreateInvitation(ctx context.Context, inv *models.Invitation) (*models.Invitation, error) {
	inv.Id = invitationID(inv.GameId, inv.UserId)
	inv.Status = models.InvitationPending
	inv.CreatedAt = time.Now()

	invAV, err := attributevalue.MarshalMap(inv)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invitation: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Invitations),
		Item:                invAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("invitation for user %s to game %s already exists", inv.UserId, inv.GameId)
		}
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	return inv, nil
}

// AcceptInvitation flips a pending invitation for (game, user) to ACCEPTED.
func (s *Store) AcceptInvitation(ctx context.Context, gameID, userID string) error {
	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Invitations),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: invitationID(gameID, userID)},
		},
		UpdateExpression:    aws.String("SET #status = :accepted"),
		ConditionExpression: aws.String("attribute_exists(id) AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":accepted": &types.AttributeValueMemberS{Value: string(models.InvitationAccepted)},
			":pending":  &types.AttributeValueMemberS{Value: string(models.InvitationPending)},
		},
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return fmt.Errorf("pending invitation for user %s to game %s: %w", userID, gameID, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to accept invitation: %w", err)
	}

	return nil
}
