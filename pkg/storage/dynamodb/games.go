package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/casey/gridline/pkg/models"
	"github.com/casey/gridline/pkg/storage"
	"github.com/google/uuid"
)

const gameStatusGSI = "status-created_at-index"

// CreateGame creates a new squares game record in DynamoDB.
func (s *Store) CreateGame(ctx context.Context, game *models.SquaresGame) (*models.SquaresGame, error) {
	if game.Id == "" {
		game.Id = uuid.New().String()
	}
	game.Version = 1
	game.CreatedAt = time.Now()

	gameAV, err := attributevalue.MarshalMap(game)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.Tables.Games),
		Item:                gameAV,
		ConditionExpression: aws.String("attribute_not_exists(id)"),
	}

	_, err = s.Client.PutItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("game with ID %s already exists", game.Id)
		}
		return nil, fmt.Errorf("failed to create game in DynamoDB: %w", err)
	}

	return game, nil
}

// GetGame retrieves a game from DynamoDB by its ID.
func (s *Store) GetGame(ctx context.Context, gameID string) (*models.SquaresGame, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": gameID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal game ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.Tables.Games),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get game from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("game with ID %s: %w", gameID, storage.ErrNotFound)
	}

	var game models.SquaresGame
	if err := attributevalue.UnmarshalMap(result.Item, &game); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &game, nil
}

// ListGamesByStatus retrieves all games in the given status.
func (s *Store) ListGamesByStatus(ctx context.Context, status models.GameStatus) ([]models.SquaresGame, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.Tables.Games),
		IndexName:              aws.String(gameStatusGSI),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query games by status: %w", err)
	}

	var games []models.SquaresGame
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &games); err != nil {
		return nil, fmt.Errorf("failed to unmarshal games: %w", err)
	}

	return games, nil
}

// UpdateGameStatus performs an optimistically-locked status transition.
// The condition on the current status makes concurrent transitions lose
// cleanly: exactly one cancel or resolve run wins.
func (s *Store) UpdateGameStatus(ctx context.Context, gameID string, from []models.GameStatus, to models.GameStatus, reason string) error {
	if len(from) == 0 {
		return fmt.Errorf("no source statuses given for transition to %s", to)
	}

	conditions := make([]string, len(from))
	values := map[string]types.AttributeValue{
		":to":  &types.AttributeValueMemberS{Value: string(to)},
		":inc": &types.AttributeValueMemberN{Value: "1"},
	}
	for i, status := range from {
		placeholder := fmt.Sprintf(":from%d", i)
		conditions[i] = fmt.Sprintf("#status = %s", placeholder)
		values[placeholder] = &types.AttributeValueMemberS{Value: string(status)}
	}

	// Only a cancellation carries a reason; other transitions must not
	// clobber one recorded earlier.
	update := "SET #status = :to, version = version + :inc"
	if to == models.GameCancelled {
		update += ", cancel_reason = :reason"
		values[":reason"] = &types.AttributeValueMemberS{Value: reason}
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.Tables.Games),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: gameID},
		},
		UpdateExpression:    aws.String(update),
		ConditionExpression: aws.String(strings.Join(conditions, " OR ")),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: values,
	}

	_, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			if to == models.GameCancelled {
				return storage.ErrGameNotCancellable
			}
			return storage.ErrInvalidTransition
		}
		return fmt.Errorf("failed to update game status: %w", err)
	}

	return nil
}
