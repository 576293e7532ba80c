package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/storage"
	dydbstore "github.com/casey/gridline/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var store storage.Storage
var notifier notifications.Notifier
var adminUserID string

const stuckTransactionThreshold = 20 * time.Minute

func init() {
	// Load environment variables for local testing.
	godotenv.Load()

	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	notifier = &notifications.NoOpNotifier{}
	if notifyQueueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); notifyQueueURL != "" {
		notifier = notifications.NewSQSNotifier(sqsClient, notifyQueueURL)
	}
	adminUserID = os.Getenv("RECONCILIATION_ADMIN_USER_ID")

	tables := dydbstore.Tables{
		Accounts:       os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		Transactions:   os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Games:          os.Getenv("DYNAMODB_GAMES_TABLE_NAME"),
		Purchases:      os.Getenv("DYNAMODB_PURCHASES_TABLE_NAME"),
		Payouts:        os.Getenv("DYNAMODB_PAYOUTS_TABLE_NAME"),
		PaymentMethods: os.Getenv("DYNAMODB_PAYMENT_METHODS_TABLE_NAME"),
		Invitations:    os.Getenv("DYNAMODB_INVITATIONS_TABLE_NAME"),
	}

	store = dydbstore.New(dbClient, tables)
}

// HandleRequest is triggered by an EventBridge Schedule. It sweeps for
// deposits and withdrawals sitting in PENDING past the threshold and flags
// them for the admin queue.
func HandleRequest(ctx context.Context) error {
	log.Println("Starting reconciliation process for stuck transactions...")

	stuckTxs, err := store.GetStuckTransactions(ctx, stuckTransactionThreshold)
	if err != nil {
		log.Printf("ERROR: failed to get stuck transactions: %v", err)
		return err
	}

	if len(stuckTxs) == 0 {
		log.Println("No stuck transactions found.")
		return nil
	}

	log.Printf("Found %d stuck transactions.", len(stuckTxs))

	for _, tx := range stuckTxs {
		notification := notifications.Notification{
			UserID:    adminUserID,
			Type:      notifications.TypeStuckTransactions,
			Title:     "Transaction needs review",
			Message:   fmt.Sprintf("%s %s for user %s has been PENDING since %s", tx.Type, tx.Id, tx.UserId, tx.CreatedAt.Format(time.RFC3339)),
			Priority:  notifications.PriorityHigh,
			ActionRef: tx.Id,
		}
		if err := notifier.CreateNotification(ctx, notification); err != nil {
			log.Printf("ERROR: failed to flag transaction %s: %v", tx.Id, err)
			// Continue to the next transaction, don't let one failure stop the whole batch.
			continue
		}
		log.Printf("Flagged stuck transaction %s for review", tx.Id)
	}

	log.Println("Reconciliation process finished.")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
