package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/casey/gridline/pkg/handlers/accounts"
	"github.com/casey/gridline/pkg/handlers/admin"
	"github.com/casey/gridline/pkg/handlers/games"
	"github.com/casey/gridline/pkg/handlers/transactions"
	"github.com/casey/gridline/pkg/ledger"
	"github.com/casey/gridline/pkg/middleware"
	"github.com/casey/gridline/pkg/notifications"
	"github.com/casey/gridline/pkg/scheduler"
	"github.com/casey/gridline/pkg/squares"
	dydbstore "github.com/casey/gridline/pkg/storage/dynamodb"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := awsdynamodb.NewFromConfig(cfg)
	tables := dydbstore.Tables{
		Accounts:       os.Getenv("DYNAMODB_ACCOUNTS_TABLE_NAME"),
		Transactions:   os.Getenv("DYNAMODB_TRANSACTIONS_TABLE_NAME"),
		Games:          os.Getenv("DYNAMODB_GAMES_TABLE_NAME"),
		Purchases:      os.Getenv("DYNAMODB_PURCHASES_TABLE_NAME"),
		Payouts:        os.Getenv("DYNAMODB_PAYOUTS_TABLE_NAME"),
		PaymentMethods: os.Getenv("DYNAMODB_PAYMENT_METHODS_TABLE_NAME"),
		Invitations:    os.Getenv("DYNAMODB_INVITATIONS_TABLE_NAME"),
	}
	if tables.Accounts == "" || tables.Transactions == "" || tables.Games == "" ||
		tables.Purchases == "" || tables.Payouts == "" || tables.PaymentMethods == "" ||
		tables.Invitations == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS clients: one queue feeds the lock lambda, one the notification
	// delivery layer.
	sqsClient := sqs.NewFromConfig(cfg)
	lockQueueURL := os.Getenv("SQS_LOCK_QUEUE_URL")
	if lockQueueURL == "" {
		log.Fatal("SQS_LOCK_QUEUE_URL environment variable not set")
	}
	lockScheduler := scheduler.NewSQSScheduler(sqsClient, lockQueueURL)

	var notifier notifications.Notifier = &notifications.NoOpNotifier{}
	if notifyQueueURL := os.Getenv("SQS_NOTIFICATIONS_QUEUE_URL"); notifyQueueURL != "" {
		notifier = notifications.NewSQSNotifier(sqsClient, notifyQueueURL)
	}

	// Create our storage implementation and the services on top of it.
	store := dydbstore.New(dbClient, tables)
	ledgerService := ledger.NewService(store, store, store, notifier)
	workflow := ledger.NewApprovalWorkflow(store, store, store, notifier)
	engine := squares.NewEngine(store, store, ledgerService, lockScheduler, notifier)

	// Create a new Chi router and mount each resource.
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewStructuredLogger(slog.Default()))
	router.Route("/accounts", accounts.NewAccountsHandler(store).Routes)
	router.Route("/transactions", transactions.NewTransactionsHandler(store, ledgerService).Routes)
	router.Route("/admin", admin.NewAdminHandler(workflow, ledgerService).Routes)
	router.Route("/games", games.NewGamesHandler(store, engine, store).Routes)
	router.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
