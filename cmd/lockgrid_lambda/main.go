package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/scheduler"
	"github.com/casey/gridline/pkg/squares"
	dydbstore "github.com/casey/gridline/pkg/storage/dynamodb"
	"github.com/joho/godotenv"
)

var engine *squares.Engine
var lockScheduler scheduler.LockScheduler

// reenqueueWindow leaves some slack under the SQS delay ceiling so a lock
// never fires early.
const reenqueueWindow = time.Minute

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	sqsClient := sqs.NewFromConfig(cfg)

	lockQueueURL := os.Getenv("SQS_LOCK_QUEUE_URL")
	if lockQueueURL == "" {
		log.Fatal("SQS_LOCK_QUEUE_URL environment variable not set")
	}
	lockScheduler = scheduler.NewSQSScheduler(sqsClient, lockQueueURL)

	var notifier notifications.Notifier = &notifications.NoOpNotifier{}
	if notifyQueueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); notifyQueueURL != "" {
		notifier = notifications.NewSQSNotifier(sqsClient, notifyQueueURL)
	}

	tables := dydbstore.Tables{
		Accounts:       os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		Transactions:   os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Games:          os.Getenv("DYNAMODB_GAMES_TABLE_NAME"),
		Purchases:      os.Getenv("DYNAMODB_PURCHASES_TABLE_NAME"),
		Payouts:        os.Getenv("DYNAMODB_PAYOUTS_TABLE_NAME"),
		PaymentMethods: os.Getenv("DYNAMODB_PAYMENT_METHODS_TABLE_NAME"),
		Invitations:    os.Getenv("DYNAMODB_INVITATIONS_TABLE_NAME"),
	}

	store := dydbstore.New(dbClient, tables)
	ledgerService := ledger.NewService(store, store, store, notifier)
	// The lambda never schedules new locks through the engine; re-enqueues
	// go straight to the scheduler.
	engine = squares.NewEngine(store, store, ledgerService, nil, notifier)
}

// HandleRequest consumes scheduled lock requests. A request whose lock time
// is still beyond the SQS delay ceiling is re-enqueued; a due request locks
// the grid and draws the numbers.
func HandleRequest(ctx context.Context, sqsEvent events.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var req scheduler.LockRequest
		if err := json.Unmarshal([]byte(message.Body), &req); err != nil {
			log.Printf("ERROR: failed to unmarshal lock request from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		if time.Until(req.LockAt) > reenqueueWindow {
			log.Printf("Lock for game %s not due until %s, re-enqueuing", req.GameID, req.LockAt)
			if err := lockScheduler.ScheduleGridLock(ctx, req); err != nil {
				log.Printf("ERROR: failed to re-enqueue lock for game %s: %v", req.GameID, err)
				return err
			}
			continue
		}

		log.Printf("Locking grid for game %s", req.GameID)

		if err := engine.LockGridAndAssignNumbers(ctx, req.GameID); err != nil {
			log.Printf("ERROR: failed to lock grid for game %s: %v", req.GameID, err)
			return err
		}

		log.Printf("Successfully locked grid for game %s", req.GameID)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
